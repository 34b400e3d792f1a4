package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/castwave/castwave/config"
	"github.com/castwave/castwave/pkg/genai"
	"github.com/castwave/castwave/pkg/helpers"
	"github.com/castwave/castwave/pkg/mailer"
	"github.com/castwave/castwave/pkg/speech"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager

	genaiClient  *genai.Client
	speechClient *speech.Client

	mailPub  *mailer.Publisher
	esClient *elasticsearch.Client
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetGenAI(c *genai.Client)          { genaiClient = c }
func GetGenAI() *genai.Client           { return genaiClient }
func SetSpeech(c *speech.Client)        { speechClient = c }
func GetSpeech() *speech.Client         { return speechClient }
func SetMailPub(p *mailer.Publisher)    { mailPub = p }
func GetMailPub() *mailer.Publisher     { return mailPub }
func SetES(c *elasticsearch.Client)     { esClient = c }
func GetES() *elasticsearch.Client      { return esClient }
