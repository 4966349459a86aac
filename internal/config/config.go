package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Strings are used for identifiers, secrets and
// file paths; the poster retry policy lives in its own PosterConfig since it
// carries defaults rather than required values.
type Config struct {
    Env             string // application environment (e.g. "dev", "prod")
    Port            string // HTTP port to listen on
    DBUser          string // database username
    DBPass          string // database password (optional)
    DBHost          string // database host address
    DBPort          string // database port number
    DBName          string // database name
    SessionSecret   string // secret used to sign session tokens
    SessionTTLMin   int    // session token time-to-live in minutes
    MovieDataPath   string // path to the movie list artifact (JSON)
    SimilarityPath  string // path to the similarity matrix artifact (JSON)
    MetadataAPIKey  string // API key for the movie metadata (poster) service
    SMSAccountID    string // messaging API account identifier
    SMSAuthToken    string // messaging API auth token
    SMSSenderNumber string // phone number messages are sent from
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:             must("APP_ENV"),                // environment (dev/test/prod)
        Port:            must("APP_PORT"),               // port to bind the HTTP server
        DBUser:          must("DB_USER"),                // database user
        DBPass:          os.Getenv("DB_PASS"),           // database password (empty allowed)
        DBHost:          must("DB_HOST"),                // database host
        DBPort:          must("DB_PORT"),                // database port
        DBName:          must("DB_NAME"),                // database name
        SessionSecret:   must("SESSION_SECRET"),         // secret for signing session tokens
        SessionTTLMin:   mustInt("SESSION_TTL_MIN"),     // TTL for session tokens in minutes
        MovieDataPath:   must("MOVIE_DATA_PATH"),        // movie list artifact
        SimilarityPath:  must("SIMILARITY_PATH"),        // similarity matrix artifact
        MetadataAPIKey:  must("METADATA_API_KEY"),       // poster lookup API key
        SMSAccountID:    must("SMS_ACCOUNT_ID"),         // messaging account id
        SMSAuthToken:    must("SMS_AUTH_TOKEN"),         // messaging auth token
        SMSSenderNumber: must("SMS_SENDER_NUMBER"),      // sender phone number
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
