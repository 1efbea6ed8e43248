package tui

import (
	"fmt"
	"time"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the stagehand ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Amber-to-rose gradient.
	lines := []struct {
		text  string
		color string
	}{
		{`       _                   _                     _ `, "#fbbf24"},
		{`  ___ | |_ __ _  __ _  ___| |__   __ _ _ __   __| |`, "#f59e0b"},
		{` / __|| __/ _' |/ _' |/ _ \ '_ \ / _' | '_ \ / _' |`, "#f97316"},
		{` \__ \| || (_| | (_| |  __/ | | | (_| | | | | (_| |`, "#f43f5e"},
		{` |___/ \__\__,_|\__, |\___|_| |_|\__,_|_| |_|\__,_|`, "#e11d48"},
		{`                |___/                              `, "#be123c"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}

// PrintSummary outputs the end-of-job totals.
func PrintSummary(job string, workers, runs int, elapsed time.Duration) {
	p := termenv.ColorProfile()
	label := func(s string) termenv.Style {
		return termenv.String(s).Foreground(p.Color("#a1a1aa"))
	}
	value := func(s string) termenv.Style {
		return termenv.String(s).Foreground(p.Color("#fbbf24")).Bold()
	}

	fmt.Printf("%s %s\n", label("job:"), value(job))
	fmt.Printf("%s %s\n", label("workers:"), value(fmt.Sprintf("%d", workers)))
	fmt.Printf("%s %s\n", label("runs:"), value(fmt.Sprintf("%d", runs)))
	fmt.Printf("%s %s\n", label("elapsed:"), value(elapsed.Round(time.Millisecond).String()))
}
