package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Env is the process environment as far as qsieve reads it.
type Env struct {
	Debug      bool
	Workers    int
	DeployAddr string
	MaxJobs    int
}

// LoadEnv reads the QSIEVE_* variables. Malformed numbers fall back to the
// defaults, and a non-positive QSIEVE_MAX_JOBS means the default of 4.
func LoadEnv() Env {
	e := Env{
		Debug:      GetEnvBool("QSIEVE_DEBUG", false),
		Workers:    max(0, GetEnvInt("QSIEVE_WORKERS", 0)),
		DeployAddr: GetEnvDefault("QSIEVE_DEPLOY_ADDR", ""),
		MaxJobs:    GetEnvInt("QSIEVE_MAX_JOBS", 4),
	}
	if e.MaxJobs <= 0 {
		e.MaxJobs = 4
	}
	return e
}

var (
	startupEnv = LoadEnv()

	EnvDebug      = startupEnv.Debug
	EnvWorkers    = startupEnv.Workers
	EnvDeployAddr = startupEnv.DeployAddr
	EnvMaxJobs    = startupEnv.MaxJobs
)

func GetEnvTrimmed(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	val := strings.TrimSpace(v)
	if os.Getenv("QSIEVE_DEBUG") != "" {
		fmt.Println("ENV", key, "detected as", val)
	}
	return val, true
}

func GetEnvBool(key string, def bool) bool {
	if val, ok := GetEnvTrimmed(key); ok {
		switch val {
		case "1":
			return true
		case "0":
			return false
		default:
			return def
		}
	}
	return def
}

func GetEnvDefault(key string, def string) string {
	if val, ok := GetEnvTrimmed(key); ok {
		return val
	}
	return def
}

func GetEnvInt(key string, def int) int {
	if val, ok := GetEnvTrimmed(key); ok {
		num, err := strconv.Atoi(val)
		if err != nil {
			return def
		}
		return num
	}
	return def
}
