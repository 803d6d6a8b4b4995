package main

import (
	"bytes"
	"flag"
	"os"
	"testing"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-08-28"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !bytes.Contains([]byte(output), []byte("v1.0.0")) ||
		!bytes.Contains([]byte(output), []byte("abcd1234")) ||
		!bytes.Contains([]byte(output), []byte("2026-08-28")) {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	appHost, appPort,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaAddr, kafkaTopic,
		inferenceURL, inferenceTimeoutSecond, analysisCacheExpSecond,
		logLevel,
		jwtSecret, jwtUserExpHour, jwtAdminExpHour,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if appHost != "localhost" || appPort != "8080" || logLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", appHost, appPort, logLevel)
	}

	if pgHost != "localhost" || pgPort != 5432 || pgUser != "user" || pgPassword != "password" || pgDB != "moodjournal" ||
		pgMaxOpenConns != 16 || pgMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	if redisHost != "localhost" || redisPort != 6379 || redisDB != 0 || redisPassword != "" {
		t.Errorf("unexpected redis config")
	}

	if kafkaAddr != "" || kafkaTopic != "mood-events" {
		t.Errorf("unexpected kafka config: %v/%v", kafkaAddr, kafkaTopic)
	}

	if inferenceURL != "http://localhost:5000" || inferenceTimeoutSecond != 30 || analysisCacheExpSecond != 300 {
		t.Errorf("unexpected inference config")
	}

	if jwtSecret != "my_super_secret_key" || jwtUserExpHour != 12 || jwtAdminExpHour != 2 {
		t.Errorf("unexpected token config: %v/%v/%v", jwtSecret, jwtUserExpHour, jwtAdminExpHour)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	resetEnv()

	os.Setenv("APP_PORT", "9090")
	os.Setenv("POSTGRES_DB", "testdb")
	os.Setenv("KAFKA_ADDR", "localhost:9092")
	os.Setenv("JWT_USER_EXP_HOUR", "1")
	os.Setenv("JWT_ADMIN_EXP_HOUR", "1")
	defer resetEnv()

	_, appPort,
		_, _, _, _, pgDB,
		_, _,
		_, _, _, _,
		kafkaAddr, _,
		_, _, _,
		_,
		_, jwtUserExpHour, jwtAdminExpHour,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if appPort != "9090" {
		t.Errorf("expected APP_PORT override, got %s", appPort)
	}
	if pgDB != "testdb" {
		t.Errorf("expected POSTGRES_DB override, got %s", pgDB)
	}
	if kafkaAddr != "localhost:9092" {
		t.Errorf("expected KAFKA_ADDR override, got %s", kafkaAddr)
	}
	if jwtUserExpHour != 1 || jwtAdminExpHour != 1 {
		t.Errorf("expected token TTL overrides, got %d/%d", jwtUserExpHour, jwtAdminExpHour)
	}
}

func TestParseConfig_InvalidInt(t *testing.T) {
	resetEnv()

	os.Setenv("POSTGRES_PORT", "not-a-number")
	defer resetEnv()

	_, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, err := parseConfig("nonexistent.env")
	if err == nil {
		t.Error("expected error for invalid POSTGRES_PORT")
	}
}
