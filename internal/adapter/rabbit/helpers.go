package rabbit

import "time"

// retry runs fn up to n times with a linear backoff between attempts.
func retry(n int, sleep time.Duration, fn func() error) error {
	var err error
	for i := range n {
		if err = fn(); err == nil {
			return nil
		}
		if i < n-1 {
			time.Sleep(time.Duration(i+1) * sleep)
		}
	}
	return err
}
