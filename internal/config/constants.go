package config

// Version is the library version reported by the CLI.
const Version = "0.4.0"

// ResultSlotName is the reserved identifier every rewritten path assigns
// into before the function yields. Fixed per rewrite invocation.
const ResultSlotName = "__implicit_result"

// DiagnosticTagSuffix is appended to the target function name to form the
// opaque tag the external materializer uses for error attribution.
const DiagnosticTagSuffix = "-implicit"

// Guard failure message used when a guard rejects without its own message.
const DefaultGuardMessage = "Guard clause failed"

// DefaultRegistryNamespace is the namespace used when none is given.
const DefaultRegistryNamespace = ""
