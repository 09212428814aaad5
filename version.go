package bioagents

// Version is the bridge release, overridden at build time with
// -ldflags "-X github.com/fdurupinar/bioagents.Version=...".
var Version = "0.1.0"
