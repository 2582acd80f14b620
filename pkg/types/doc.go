// Package types defines the core types and interfaces used throughout
// reactor. This includes interfaces for Matcher and Hook, as well as
// data structures like Event, Message, RuleConfig and Rule.
package types
