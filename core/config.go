package core

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	DatabaseConfig struct {
		Engine        string // sqlite | postgres
		Path          string // sqlite file
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	ServerConfig struct {
		Host                      string
		Port                      int
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	CollegeConfig struct {
		Name     string
		Address  string
		Currency string
	}

	AssetsConfig struct {
		Logo             string
		CollegeInfo      string
		Background       string
		IDCardBackground string
		Font             string
		FontBold         string
	}

	Config struct {
		Env          string
		AppName      string
		Build        string
		Debug        bool
		TestMode     bool
		SecretKey    string
		WorkDir      string
		RollbarToken string
		LogLevel     string

		Database DatabaseConfig
		Server   ServerConfig
		College  CollegeConfig
		Assets   AssetsConfig

		// AllowBonusMarks permits marks_obtained above max_marks.
		AllowBonusMarks bool
	}
)

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

func (c ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

// Path resolves p against the working directory unless it is absolute.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", true)
	v.SetDefault("appName", "SDMS")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "k3v9-wq)pz1$+c8=ya&nrt4(u!e)#*s2(#hh^$xbfm7ten")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("workDir", "")

	v.SetDefault("database.engine", "sqlite")
	v.SetDefault("database.path", filepath.Join("data", "sdms.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "sdms")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.jwtExpirationDelta", 8*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 24*time.Hour)

	v.SetDefault("college.name", "Saraswati College, Shegaon")
	v.SetDefault("college.address", "Gaulkhed Road, Shegaon Dist:- Buldhana, State:-Maharashtra (INDIA) Pin: 444 203")
	v.SetDefault("college.currency", "INR")

	v.SetDefault("assets.logo", filepath.Join("assets", "logo.png"))
	v.SetDefault("assets.collegeInfo", filepath.Join("assets", "college_info.png"))
	v.SetDefault("assets.background", filepath.Join("assets", "college_view_bg.png"))
	v.SetDefault("assets.idCardBackground", filepath.Join("assets", "id_card_bg.png"))
	v.SetDefault("assets.font", filepath.Join("assets", "fonts", "arial.ttf"))
	v.SetDefault("assets.fontBold", filepath.Join("assets", "fonts", "arialbd.ttf"))

	v.SetDefault("marks.allowBonus", false)
}

// NewConfig loads the configuration: defaults, then `config/sdms.yaml` (optional),
// then `config/.env.<env>` (optional) and finally the environment, prefixed with the upper-cased ENV.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := os.Getenv(env + "_WORKDIR")
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return nil, errors.Wrap(err, "getting working directory")
		}
	}

	v.SetConfigName("sdms")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(wd, "config"))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		SecretKey:    v.GetString("secretKey"),
		WorkDir:      wd,
		RollbarToken: v.GetString("rollbarToken"),
		LogLevel:     v.GetString("logLevel"),
		Database: DatabaseConfig{
			Engine:        strings.ToLower(v.GetString("database.engine")),
			Path:          v.GetString("database.path"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Server: ServerConfig{
			Host:                      v.GetString("server.host"),
			Port:                      v.GetInt("server.port"),
			JWTExpirationDelta:        v.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("server.jwtRefreshExpirationDelta"),
		},
		College: CollegeConfig{
			Name:     v.GetString("college.name"),
			Address:  v.GetString("college.address"),
			Currency: v.GetString("college.currency"),
		},
		Assets: AssetsConfig{
			Logo:             v.GetString("assets.logo"),
			CollegeInfo:      v.GetString("assets.collegeInfo"),
			Background:       v.GetString("assets.background"),
			IDCardBackground: v.GetString("assets.idCardBackground"),
			Font:             v.GetString("assets.font"),
			FontBold:         v.GetString("assets.fontBold"),
		},
		AllowBonusMarks: v.GetBool("marks.allowBonus"),
	}
	if d := v.GetString("workDir"); d != "" {
		conf.WorkDir = d
	}
	return conf, nil
}
