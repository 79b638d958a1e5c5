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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valpere/jetrans/internal/clipboard"
	"github.com/valpere/jetrans/internal/script"
	"github.com/valpere/jetrans/internal/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Start an interactive translation session",
	Long: `Start an interactive session. Each line is translated; history is kept
in memory until the session ends.

Commands:
  :g <text>              Check the grammar of English text
  :model [id]            Show or change the model
  :models                List models
  :history               Show history, newest first
  :copy <id> [field]     Copy a field of a history entry
                         (translated|original|raw, or corrected|result|original)
  :help                  Show this help
  :quit                  Leave the session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		r := &repl{
			sess: a.session,
			clip: a.clip,
			log:  a.log,
			out:  cmd.OutOrStdout(),
		}
		return r.run(cmd.Context(), cmd.InOrStdin())
	},
}

const replHelp = `  <text>              翻訳 (日本語 ⇄ English)
  :g <text>           文法チェック (英語のみ)
  :model [id]         モデルの表示・変更
  :models             モデル一覧
  :history            履歴 (新しい順)
  :copy <id> [field]  履歴の項目をコピー
  :quit               終了`

// repl is the terminal presentation layer. Every call error is reported to
// the user and the loop continues with the session unchanged.
type repl struct {
	sess *session.Session
	clip clipboard.Writer
	log  *zap.Logger
	out  io.Writer
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintf(r.out, "jetrans %s  モデル: %s  (:help でヘルプ)\n", version, r.sess.Model().ID)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		if quit := r.handle(ctx, scanner.Text()); quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Fprintln(r.out)
	return nil
}

// handle processes one input line and reports whether the session should end.
func (r *repl) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ":") {
		r.translate(ctx, line)
		return false
	}

	name, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "q", "quit", "exit":
		return true
	case "h", "help":
		fmt.Fprintln(r.out, replHelp)
	case "g", "grammar":
		r.checkGrammar(ctx, rest)
	case "model":
		if rest == "" {
			m := r.sess.Model()
			fmt.Fprintf(r.out, "モデル: %s (%s)\n", m.ID, m.Description)
			break
		}
		if err := r.sess.SetModel(rest); err != nil {
			r.fail(err)
			break
		}
		m := r.sess.Model()
		fmt.Fprintf(r.out, "✅ モデル変更: %s (%s)\n", m.Name, m.Description)
	case "models":
		if err := printModels(r.out, r.sess.Model().ID); err != nil {
			r.fail(err)
		}
	case "history":
		renderHistory(r.out, r.sess.Entries())
	case "copy":
		r.copy(rest)
	default:
		fmt.Fprintf(r.out, "不明なコマンドです: :%s (:help でヘルプ)\n", name)
	}
	return false
}

func (r *repl) translate(ctx context.Context, text string) {
	fmt.Fprintln(r.out, "翻訳中...")
	rec, err := r.sess.Translate(ctx, text)
	if err != nil {
		r.fail(err)
		fmt.Fprintln(r.out, "翻訳エラー")
		return
	}
	renderTranslation(r.out, rec)
	fmt.Fprintln(r.out, "翻訳完了")
}

func (r *repl) checkGrammar(ctx context.Context, text string) {
	// Disabled for empty or Japanese input; the session returns the reason
	// without calling the API.
	if !script.GrammarCheckAllowed(text) {
		_, err := r.sess.CheckGrammar(ctx, text)
		r.fail(err)
		return
	}

	fmt.Fprintln(r.out, "文法チェック中...")
	rec, err := r.sess.CheckGrammar(ctx, text)
	if err != nil {
		r.fail(err)
		fmt.Fprintln(r.out, "文法チェックエラー")
		return
	}
	renderGrammarCheck(r.out, rec)
	fmt.Fprintln(r.out, "文法チェック完了")
}

func (r *repl) copy(args string) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		fmt.Fprintln(r.out, "使い方: :copy <id> [field]")
		return
	}

	entry, err := r.sess.Find(fields[0])
	if err != nil {
		r.fail(err)
		return
	}

	field := ""
	if len(fields) > 1 {
		field = fields[1]
	}
	text, ok := entry.Field(field)
	if !ok {
		fmt.Fprintf(r.out, "不明なフィールドです: %s\n", field)
		return
	}

	if err := clipboard.Copy(r.clip, text); err != nil {
		r.fail(err)
		return
	}
	fmt.Fprintln(r.out, "📋 コピーしました")
}

func (r *repl) fail(err error) {
	if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrAmbiguousID) {
		fmt.Fprintf(r.out, "エラー: %v\n", err)
		return
	}
	r.log.Debug("action failed", zap.Error(err))
	fmt.Fprintln(r.out, userMessage(err))
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
