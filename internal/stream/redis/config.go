package redis

type RedisStreamConfig struct {
	RedisAddr      string
	RedisPassword  string
	ConnectRetries int
	Stream         string
	ResultStream   string
	Group          string
	ConsumerName   string
}

func NewRedisStreamConfig(redisAddr, redisPassword, stream, resultStream, group, consumerName string) *RedisStreamConfig {
	return &RedisStreamConfig{
		RedisAddr:      redisAddr,
		RedisPassword:  redisPassword,
		ConnectRetries: 5,
		Stream:         stream,
		ResultStream:   resultStream,
		Group:          group,
		ConsumerName:   consumerName,
	}
}
