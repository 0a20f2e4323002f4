package usecase

import "time"

// timeNow is swapped out in tests that exercise suspension windows.
var timeNow = time.Now
