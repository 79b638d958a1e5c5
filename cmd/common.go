/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valpere/jetrans/internal/chat"
	"github.com/valpere/jetrans/internal/clipboard"
	"github.com/valpere/jetrans/internal/config"
	"github.com/valpere/jetrans/internal/logging"
	"github.com/valpere/jetrans/internal/models"
	"github.com/valpere/jetrans/internal/session"
)

// app is what every command works with: loaded settings, a logger and a
// session bound to the configured backend.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	session *session.Session
	clip    clipboard.Writer
}

// loadConfig reads .env, the config file, the environment and flags. A
// missing credential is reported through credentialMissing, not as an error.
func loadConfig() (cfg *config.Config, credentialMissing bool, err error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, false, err
	}

	config.SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".jetrans")
		v.SetConfigType("yaml")
	}

	cfg, err = config.Load(v)
	if errors.Is(err, config.ErrCredentialMissing) {
		return cfg, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, credentialMissing, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logging.New(logging.Options{Debug: cfg.Debug, JSON: cfg.LogJSON, Output: cmd.ErrOrStderr()})
	if credentialMissing {
		log.Warn("API key is not configured; requests will fail with an auth error",
			zap.String("env", config.CredentialEnv))
	}

	completer, err := buildCompleter(cfg, log)
	if err != nil {
		return nil, err
	}

	log.Debug("configuration loaded",
		zap.String("model", cfg.Model),
		zap.String("backend", cfg.Backend),
		zap.String("base_url", cfg.BaseURL),
		zap.String("config_file", v.ConfigFileUsed()))

	return &app{
		cfg: cfg,
		log: log,
		session: session.New(completer,
			session.WithModel(cfg.Model),
			session.WithLogger(log)),
		clip: clipboard.System{},
	}, nil
}

func buildCompleter(cfg *config.Config, log *zap.Logger) (chat.Completer, error) {
	switch cfg.Backend {
	case config.BackendHTTP:
		return chat.NewHTTPClient(cfg.Chat(), log), nil
	case config.BackendOpenAI:
		return chat.NewOpenAIClient(cfg.Chat(), log), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
}

// userMessage turns an error into the text shown to the user.
func userMessage(err error) string {
	var httpErr *chat.HTTPError
	switch {
	case errors.As(err, &httpErr):
		switch httpErr.Status {
		case 401, 403:
			return fmt.Sprintf("エラー: 認証に失敗しました (HTTP %d)。%s を確認してください。", httpErr.Status, config.CredentialEnv)
		case 429:
			return "エラー: リクエストが多すぎます (HTTP 429)。しばらくしてから再試行してください。"
		}
		if httpErr.Body != "" {
			return fmt.Sprintf("エラー: API がステータス %d を返しました: %s", httpErr.Status, httpErr.Body)
		}
		return fmt.Sprintf("エラー: API がステータス %d を返しました。", httpErr.Status)
	case errors.Is(err, chat.ErrMalformedResponse):
		return "エラー: API の応答を解析できませんでした。"
	case errors.Is(err, session.ErrJapaneseInput):
		return "エラー: 文法チェックは英語の入力のみ対応しています。"
	case errors.Is(err, session.ErrEmptyInput):
		return "エラー: 入力が空です。"
	case errors.Is(err, session.ErrBusy):
		return "エラー: 処理中です。完了までお待ちください。"
	case errors.Is(err, clipboard.ErrClipboard):
		return "エラー: クリップボードにアクセスできません。"
	case errors.Is(err, models.ErrUnknownModel):
		return fmt.Sprintf("エラー: 不明なモデルです。利用可能: %s", strings.Join(models.IDs(), ", "))
	}
	return "エラー: " + err.Error()
}

// readInput joins args, or reads all of r when there are none.
func readInput(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
