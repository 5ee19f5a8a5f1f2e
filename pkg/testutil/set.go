package testutil

// Set sets *p to v for the duration of a test, and restores the old value
// afterwards. It is mostly used to override package-level variables that
// point to the environment, like paths and terminal checks.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}
