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
	"fmt"

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate text between Japanese and English",
	Long: `Translate text between Japanese and English.

Text is taken from the arguments, or from stdin when no arguments are given.
Japanese input is translated to English; anything else to Japanese.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		rec, err := a.session.Translate(cmd.Context(), text)
		if err != nil {
			return err
		}

		if translateQuiet {
			fmt.Fprintln(cmd.OutOrStdout(), rec.TranslatedText)
			return nil
		}
		renderTranslation(cmd.OutOrStdout(), rec)
		return nil
	},
}

var translateQuiet bool

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().BoolVarP(&translateQuiet, "quiet", "q", false, "Print only the translated text")
}
