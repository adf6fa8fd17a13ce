// Package locator resolves the worker-local copy of the model artifact.
package locator

import "strings"

// Resolve picks the local file to load the model from.
//
// With no local replicas the distribution mechanism is absent (local
// mode) and the configured model path is used directly. Otherwise the
// replica list is scanned in order and the first path ending with the
// configured model path wins. The boolean makes absence explicit; callers
// must treat false as fatal for the worker.
func Resolve(modelPath string, replicas []string) (string, bool) {
	if len(replicas) == 0 {
		return modelPath, true
	}
	for _, r := range replicas {
		if strings.HasSuffix(r, modelPath) {
			return r, true
		}
	}
	return "", false
}
