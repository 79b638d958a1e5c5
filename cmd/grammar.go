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

	"github.com/valpere/jetrans/internal/clipboard"
)

var grammarCopy bool

var grammarCmd = &cobra.Command{
	Use:   "grammar [text...]",
	Short: "Check English grammar",
	Long: `Check the grammar of an English sentence and print the corrected version.

Input containing Japanese characters is refused.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		rec, err := a.session.CheckGrammar(cmd.Context(), text)
		if err != nil {
			return err
		}
		renderGrammarCheck(cmd.OutOrStdout(), rec)

		if grammarCopy {
			if err := clipboard.Copy(a.clip, rec.CorrectedText); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "正しい英文をコピーしました。")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(grammarCmd)

	grammarCmd.Flags().BoolVarP(&grammarCopy, "copy", "c", false, "Copy the corrected sentence to the clipboard")
}
