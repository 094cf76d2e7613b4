package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store drivers
const (
	DriverMongo    = "mongo"
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Object stores
const (
	ObjectStoreS3         = "s3"
	ObjectStoreCloudinary = "cloudinary"
)

// Password hashing modes
const (
	PasswordsPlain  = "plain"
	PasswordsBcrypt = "bcrypt"
)

// Config holds the project config values
type Config struct {
	Environment string `env:"ENVIRONMENT" env-default:"production"`
	Port        string `env:"PORT" env-default:"8080"`
	BaseURL     string `env:"BASE_URL"`

	StoreDriver  string `env:"STORE_DRIVER" env-default:"mongo"`
	URL          string `env:"DB_URI" env-default:"mongodb://127.0.0.1:27017"`
	DatabaseName string `env:"DB_NAME" env-default:"medireminder"`

	Region           string `env:"REGION"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`

	AdminsTable          string `env:"ADMINS_TABLE" env-default:"admins"`
	MedicamentsTable     string `env:"MEDICAMENTS_TABLE" env-default:"medicaments"`
	RecommendationsTable string `env:"RECOMMENDATIONS_TABLE" env-default:"recommendations"`
	RemindersTable       string `env:"REMINDERS_TABLE" env-default:"reminders"`
	RemindersUserIndex   string `env:"REMINDERS_USER_INDEX" env-default:"user_id-index"`

	ObjectStore   string `env:"OBJECT_STORE" env-default:"s3"`
	BucketName    string `env:"AWS_S3_BUCKET_NAME"`
	S3Endpoint    string `env:"AWS_S3_ENDPOINT"`
	CloudinaryURL string `env:"CLOUDINARY_URL"`

	PasswordHashing string        `env:"PASSWORD_HASHING" env-default:"plain"`
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" env-default:"24h"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
}

// New reads the config from the environment and sets up the global logger
func New() (*Config, error) {
	var c Config
	if err := cleanenv.ReadEnv(&c); err != nil {
		return nil, err
	}

	if _, err := setLogger(c.Environment); err != nil {
		return nil, err
	}
	return &c, nil
}
