package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "A rule-based event dispatcher"
	MsgRunShort       = "Run the dispatcher until interrupted"
	MsgValidateShort  = "Validate the configured rules"
	MsgRulesShort     = "List the effective rules"
	MsgHooksShort     = "List the available dispatch hooks"
	MsgVersionShort   = "Print version information"
	MsgGenConfigShort = "Write a starter configuration file"

	// Status messages
	MsgRulesValid       = "All %d rules are valid.\n"
	MsgRulesInvalid     = "%d of %d rules are invalid:\n"
	MsgRuleProblem      = "  ✗ rule %d (%s): %v\n"
	MsgNoRules          = "No rules configured."
	MsgConfigWritten    = "Wrote starter configuration to %s\n"
	MsgConfigExists     = "Configuration file already exists at %s (use --force to overwrite)\n"
	MsgShuttingDown     = "Shutting down, waiting for in-flight evaluations..."
	MsgEngineStopped    = "Engine stopped."
	MsgStartupRules     = "Registered %d of %d configured rules.\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrLoadRules  = "failed to load rules file: %w"
	MsgErrStart      = "failed to start: %w"
)
