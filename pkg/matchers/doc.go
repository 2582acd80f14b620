// Package matchers implements the pattern-test strategies rules are
// built from. Matchers are small engines that test an event's tag and,
// for the regex kind, expose named captures to condition evaluation and
// template resolution.
package matchers
