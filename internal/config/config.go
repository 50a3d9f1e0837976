package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    SessionTTLHrs  int    // session lifetime in hours
    OtpTTLMin      int    // OTP code lifetime in minutes
    BcryptCost     int    // bcrypt cost for PIN/password hashing
    UploadDir      string // directory where processed profile photos are stored
    SMSTokenID     string // BulkSMS token id (empty enables development mode)
    SMSTokenSecret string // BulkSMS token secret
    SMSSenderID    string // SMS sender id shown to recipients
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Optional values fall
// back to the defaults the API has always shipped with (24h sessions, 60
// minute OTPs, bcrypt cost 10).
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),      // environment (dev/test/prod)
        Port:           must("APP_PORT"),     // port to bind the HTTP server
        DBUser:         must("DB_USER"),      // database user
        DBPass:         os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:         must("DB_HOST"),      // database host
        DBPort:         must("DB_PORT"),      // database port
        DBName:         must("DB_NAME"),      // database name
        SessionTTLHrs:  intOr("SESSION_TTL_HOURS", 24),
        OtpTTLMin:      intOr("OTP_TTL_MIN", 60),
        BcryptCost:     intOr("BCRYPT_COST", 10),
        UploadDir:      strOr("UPLOAD_DIR", "uploads"),
        SMSTokenID:     os.Getenv("BULKSMS_TOKEN_ID"),
        SMSTokenSecret: os.Getenv("BULKSMS_TOKEN_SECRET"),
        SMSSenderID:    strOr("BULKSMS_SENDER_ID", "HireMeFor"),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// strOr returns the environment value for key or the given default when unset.
func strOr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// intOr is like strOr but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits rather
// than silently running with a misconfigured TTL or hash cost.
func intOr(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, v)
    }
    return n
}
