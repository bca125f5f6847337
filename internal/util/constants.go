package util

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// WeightTolerance is the accepted distance between a project's dimension
// weight sum and 1.
const WeightTolerance = 0.001
