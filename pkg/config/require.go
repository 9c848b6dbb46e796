package config

import "log"

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

// MustDiffer guards against reusing one secret for both token kinds.
func MustDiffer(a, b []byte, aName, bName string) {
	if string(a) == string(b) {
		log.Fatalf("%s and %s must not be equal", aName, bName)
	}
}
