package commands

// PullRequestBody exports pullRequestBody for testing.
var PullRequestBody = pullRequestBody //nolint:gochecknoglobals // test export
