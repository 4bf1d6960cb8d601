// Package ficbot provides chat bots for fan-fiction communities. The fic
// bot watches channels for links to works on supported sites and answers
// with a rich summary of each work; the moderation bot relays reports and
// admin messages to a moderation channel and greets new members.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, html/, discord/).
package ficbot
