package conf

const (
	defaultRTTFirstMs    = 500
	defaultRTTNextFactor = 2
	defaultRTTTotalSpots = 10

	defaultLatencyFirstMs    = 1000
	defaultLatencyNextFactor = 2
	defaultLatencyTotalSpots = 12

	defaultRecordSizeFirstKB    = 1
	defaultRecordSizeNextFactor = 10
	defaultRecordSizeTotalSpots = 5

	defaultStorageSizeFirstKB    = 1
	defaultStorageSizeNextFactor = 10
	defaultStorageSizeTotalSpots = 6
)
