package usecase

// Export unexported functions for testing
type DispatchInputForTest = dispatchInput

var DispatchForTest = dispatch
