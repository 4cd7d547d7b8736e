package config

import "os"

// IsServerlessMode reports whether the process is running inside AWS
// Lambda. The runtime sets AWS_LAMBDA_FUNCTION_NAME on every invocation
// environment.
func IsServerlessMode() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// GetDeploymentMode returns the current deployment mode, reported by the
// health endpoint.
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}
