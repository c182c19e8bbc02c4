package ai

// PRMessageSystemInstruction is the fixed system instruction for PR message
// generation. Keeping it identical across runs makes it cache-eligible on
// the provider side.
const PRMessageSystemInstruction = "You are a developer assistant. " +
	"Generate clear, concise pull request messages in markdown. " +
	"Respond with the PR title on the first line, then a blank line, then the PR body. " +
	"Do not wrap the response in code fences."
