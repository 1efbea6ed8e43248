package stagehand

// Version is the library version, surfaced by the CLI.
const Version = "0.3.0"
