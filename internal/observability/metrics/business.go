package metrics

import "time"

// RecordDispatch records one platform call.
func RecordDispatch(operation, kind, result string, duration time.Duration) {
	DispatchTotal.WithLabelValues(operation, kind, result).Inc()
	DispatchDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordMulticastRecipients records the size of an explicit recipient list.
func RecordMulticastRecipients(n int) {
	DispatchRecipients.Observe(float64(n))
}

// RecordPlatformInit records a platform client construction attempt.
func RecordPlatformInit(ok bool) {
	PlatformClientInitTotal.WithLabelValues(result(ok)).Inc()
}

// RecordFileStaged records a staging attempt and its payload size.
func RecordFileStaged(size int, ok bool) {
	FileStagedBytes.WithLabelValues(result(ok)).Observe(float64(size))
}

// RecordHistoryWrite records a history ledger write.
func RecordHistoryWrite(ok bool) {
	HistoryWritesTotal.WithLabelValues(result(ok)).Inc()
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}
