package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the resolved application configuration.
// It is populated once at init from defaults, an optional config/.env.<env>
// file and the environment (env vars win).
var Conf *Config

type Config struct {
	Env      string
	Debug    bool
	TestMode bool
	AppName  string
	Build    string

	Server struct {
		Host string
		Port string
	}

	// Sheet holds everything needed to reach the backing spreadsheet.
	Sheet struct {
		SpreadsheetID string
		ClientEmail   string
		PrivateKey    string // PEM; newlines may arrive escaped as \n
		CSVExportBase string // public CSV export endpoint, no auth

		RequestTimeout time.Duration
		RetryAttempts  int
		RetryBackoff   time.Duration // multiplied by the attempt number
	}

	SMS struct {
		BaseURL          string
		APIKey           string
		Username         string
		SenderID         string
		FallbackSenderID string
	}

	TemplateCacheTTL    time.Duration
	VerificationCodeTTL time.Duration

	RollbarToken string
}

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Sukuu")
	v.SetDefault("build", "dev")
	v.SetDefault("serverHost", "")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("csvExportBase", "https://docs.google.com/spreadsheets/d")
	v.SetDefault("sheetRequestTimeout", 30*time.Second)
	v.SetDefault("sheetRetryAttempts", 3)
	v.SetDefault("sheetRetryBackoff", 2*time.Second)
	v.SetDefault("smsSenderID", "SUKUU")
	v.SetDefault("smsFallbackSenderID", "SCHOOL")
	v.SetDefault("templateCacheTTL", 5*time.Minute)
	v.SetDefault("verificationCodeTTL", 10*time.Minute)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:      env,
		Debug:    v.GetBool("debug"),
		TestMode: v.GetBool("testMode"),
		AppName:  v.GetString("appName"),
		Build:    v.GetString("build"),

		TemplateCacheTTL:    v.GetDuration("templateCacheTTL"),
		VerificationCodeTTL: v.GetDuration("verificationCodeTTL"),
		RollbarToken:        v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Port = v.GetString("serverPort")

	conf.Sheet.SpreadsheetID = v.GetString("spreadsheetID")
	conf.Sheet.ClientEmail = v.GetString("sheetClientEmail")
	// key material often arrives with literal "\n" from env files
	conf.Sheet.PrivateKey = strings.ReplaceAll(v.GetString("sheetPrivateKey"), `\n`, "\n")
	conf.Sheet.CSVExportBase = v.GetString("csvExportBase")
	conf.Sheet.RequestTimeout = v.GetDuration("sheetRequestTimeout")
	conf.Sheet.RetryAttempts = v.GetInt("sheetRetryAttempts")
	conf.Sheet.RetryBackoff = v.GetDuration("sheetRetryBackoff")

	conf.SMS.BaseURL = v.GetString("smsBaseURL")
	conf.SMS.APIKey = v.GetString("smsAPIKey")
	conf.SMS.Username = v.GetString("smsUsername")
	conf.SMS.SenderID = v.GetString("smsSenderID")
	conf.SMS.FallbackSenderID = v.GetString("smsFallbackSenderID")

	Conf = conf
}
