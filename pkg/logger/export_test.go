package logger

// Reset drops the singleton so the next Init call rebuilds it.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}
