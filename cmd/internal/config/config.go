package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/rentalcontracts/prod/"

// Where the machine rates of a quote come from.
const (
	RateSourceMachine = "machine"
	RateSourceRemote  = "remote"
)

type Config struct {
	HTTPAddr string

	CommandsBaseURL string
	CommandsTimeout time.Duration

	DBPath string

	S3Region string
	S3Bucket string

	WSEndpoint string
	WSRegion   string

	CognitoRegion string
	CognitoPoolID string
	// JWTSecret replaces the Cognito JWKS with a shared HMAC secret. Local use only.
	JWTSecret string

	MachineID int64

	LessorContextTTL time.Duration
	RunRetention     time.Duration
	RateSource       string

	RegistryBaseURL  string
	RegistryCacheTTL time.Duration
	// Zero disables the limit.
	RegistryRatePerMinute int
}

// LoadEnv exports the environment: AWS SSM Parameter Store in production,
// the local .env file otherwise.
func LoadEnv(ctx context.Context) error {
	if os.Getenv("GO_ENV") == "production" {
		return loadProdEnv(ctx)
	}
	return godotenv.Load()
}

// FromEnv builds the config from environment variables, with defaults for
// everything optional.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":7070"),
		CommandsBaseURL: os.Getenv("COMMANDS_BASE_URL"),
		DBPath:          getEnv("DB_PATH", "rentalcontracts.db"),
		S3Region:        os.Getenv("AWS_S3_REGION"),
		S3Bucket:        os.Getenv("S3_BUCKET_NAME"),
		WSEndpoint:      os.Getenv("WS_GATEWAY_ENDPOINT"),
		WSRegion:        os.Getenv("AWS_WS_REGION"),
		CognitoRegion:   os.Getenv("AWS_COGNITO_REGION"),
		CognitoPoolID:   os.Getenv("COGNITO_POOL_ID"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RegistryBaseURL: os.Getenv("REGISTRY_BASE_URL"),
		RateSource:      strings.ToLower(getEnv("RATE_SOURCE", RateSourceMachine)),
	}

	if cfg.CommandsBaseURL == "" {
		return nil, fmt.Errorf("COMMANDS_BASE_URL is required")
	}
	if cfg.JWTSecret == "" && (cfg.CognitoRegion == "" || cfg.CognitoPoolID == "") {
		return nil, fmt.Errorf("AWS_COGNITO_REGION and COGNITO_POOL_ID are required")
	}
	if cfg.RateSource != RateSourceMachine && cfg.RateSource != RateSourceRemote {
		return nil, fmt.Errorf("RATE_SOURCE must be %q or %q, got %q", RateSourceMachine, RateSourceRemote, cfg.RateSource)
	}

	var err error
	if cfg.MachineID, err = getInt64("MACHINE_ID", 1); err != nil {
		return nil, err
	}
	rpm, err := getInt64("REGISTRY_RATE_PER_MINUTE", 30)
	if err != nil {
		return nil, err
	}
	cfg.RegistryRatePerMinute = int(rpm)
	if cfg.CommandsTimeout, err = getDuration("COMMANDS_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.LessorContextTTL, err = getDuration("LESSOR_CONTEXT_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RegistryCacheTTL, err = getDuration("REGISTRY_CACHE_TTL", 10*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RunRetention, err = getDuration("RUN_RETENTION", 30*24*time.Hour); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt64(key string, def int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return val, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return val, nil
}

func loadProdEnv(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(getEnv("AWS_SSM_REGION", "us-east-2")))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	loaded := 0
	prefixLength := len(envVarsPrefix)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}

		// Export vars
		for _, param := range out.Parameters {
			key := (*param.Name)[prefixLength:]
			if err = os.Setenv(key, *param.Value); err != nil {
				return fmt.Errorf("unable to set environment variable: %w", err)
			}
			loaded++
		}
	}
	log.Debugf("loaded %d prod environment variables", loaded)
	return nil
}
