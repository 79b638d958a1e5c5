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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var (
	cfgFile string
	envFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "jetrans",
	Short: "Japanese ⇄ English translator and grammar checker",
	Long: `A CLI application that translates between Japanese and English using an
OpenAI-compatible chat-completion API, and checks English grammar.

The direction is picked automatically: input containing hiragana, katakana,
kanji or fullwidth characters is translated to English, anything else to
Japanese.

The API key is read from OPENAI_API_KEY (or JETRANS_API_KEY).

Use "jetrans session" for an interactive session with history.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln(userMessage(err))
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.jetrans.yaml)")
	pf.StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	pf.StringP("model", "m", "", "Model to use (see 'jetrans models')")
	pf.String("backend", "", "Client backend: http or openai")
	pf.String("base-url", "", "Chat-completion API base URL")
	pf.Duration("timeout", 0, "Request timeout (0 = transport default)")
	pf.Bool("debug", false, "Enable debug logging")
	pf.Bool("log-json", false, "Log as JSON")

	_ = v.BindPFlag("model", pf.Lookup("model"))
	_ = v.BindPFlag("backend", pf.Lookup("backend"))
	_ = v.BindPFlag("base_url", pf.Lookup("base-url"))
	_ = v.BindPFlag("timeout", pf.Lookup("timeout"))
	_ = v.BindPFlag("debug", pf.Lookup("debug"))
	_ = v.BindPFlag("log_json", pf.Lookup("log-json"))
}
