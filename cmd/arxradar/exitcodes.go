package main

// Exit codes. Zero covers success including the "nothing new to fetch" case.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, invalid paths)
	ExitFetchError  = 3 // Unrecovered upstream fetch failure
	ExitDataError   = 4 // Storage failure on partitions, index, or cache
)
