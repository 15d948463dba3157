package ir

// ToolVersion is the provgraph release version.
const ToolVersion = "0.1.0"
