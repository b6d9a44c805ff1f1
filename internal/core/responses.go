package core

import "math/rand"

// ResponseKind identifies a canned user-facing notice.
type ResponseKind int

const (
	ResponseSuccess ResponseKind = iota
	ResponseFail
	ResponseNoParams
	ResponseTooManyParams
	ResponseNotACommand
	ResponseInsufficientPerms
	ResponseGuildNotSetup
	ResponseIDNotFound
)

var responses = map[ResponseKind][]string{
	ResponseSuccess: {
		"Done!",
		"Got it, commander.",
		"Consider it done.",
	},
	ResponseFail: {
		"Something went wrong. Try again in a bit.",
		"That didn't work out. Sorry.",
	},
	ResponseNoParams: {
		"You didn't give me any parameters to work with.",
		"I need a few more parameters than that.",
	},
	ResponseTooManyParams: {
		"That's too many parameters for this command.",
		"Easy there, that command takes fewer parameters.",
	},
	ResponseNotACommand: {
		"That's not a command I know.",
		"Never heard of that command.",
	},
	ResponseInsufficientPerms: {
		"You don't have permission to do that.",
		"I'm afraid you lack the required roles for this.",
	},
	ResponseGuildNotSetup: {
		"This server is not set up yet.",
		"I don't have this server on record yet.",
	},
	ResponseIDNotFound: {
		"I couldn't find that id in this server.",
		"That id doesn't exist here.",
	},
}

// Response returns one of the canned variants for the given kind.
func Response(kind ResponseKind) string {
	variants := responses[kind]
	if len(variants) == 0 {
		return ""
	}
	return variants[rand.Intn(len(variants))]
}

// Variants returns all canned texts for a kind.
func Variants(kind ResponseKind) []string {
	out := make([]string, len(responses[kind]))
	copy(out, responses[kind])
	return out
}
