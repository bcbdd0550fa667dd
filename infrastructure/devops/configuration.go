package devops

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

const databasesParameter = "databases"

type DBEntry struct {
	Name     string `yaml:"name" json:"name"`
	Driver   string `yaml:"driver" json:"driver"`
	Host     string `yaml:"host" json:"host"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// GetDSN builds a connection string for dbname on this server.
// An empty dbname leaves the database out, which is what the shared pool wants.
func (db DBEntry) GetDSN(dbname string) string {
	if db.Driver == "postgres" {
		host := db.Host
		if !strings.Contains(host, ":") {
			host = host + ":5432"
		}
		if dbname == "" {
			dbname = "postgres"
		}
		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=require", db.Username, db.Password, host, dbname)
	}

	host := db.Host
	if !strings.Contains(host, ":") {
		host = host + ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC", db.Username, db.Password, host, dbname)
}

// ParseDBConfig decodes the yaml list stored in the databases parameter.
func ParseDBConfig(raw []byte) ([]DBEntry, error) {
	var parsed []DBEntry
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return parsed, nil
}

// FindDBEntry looks an entry up by name, ignoring case.
func FindDBEntry(entries []DBEntry, name string) (*DBEntry, bool) {
	for i := range entries {
		if strings.EqualFold(entries[i].Name, name) {
			return &entries[i], true
		}
	}
	return nil, false
}

var (
	once    sync.Once
	dbList  []DBEntry
	loadErr error
)

func LoadDBConfig(ctx context.Context) ([]DBEntry, error) {
	once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(databasesParameter),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}
		if out.Parameter == nil || out.Parameter.Value == nil {
			loadErr = fmt.Errorf("parameter %s is empty", databasesParameter)
			return
		}

		dbList, loadErr = ParseDBConfig([]byte(*out.Parameter.Value))
	})

	return dbList, loadErr
}
