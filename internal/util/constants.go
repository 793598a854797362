package util

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)
