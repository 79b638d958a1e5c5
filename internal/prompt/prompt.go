// Package prompt holds the system prompts sent with each chat completion.
package prompt

import "github.com/valpere/jetrans/internal/script"

// Section headers of the grammar-check reply template.
const (
	HeaderResult      = "【文法チェック結果】"
	HeaderSuggestion  = "【修正提案】"
	HeaderExplanation = "【説明】"
	HeaderCorrect     = "【正しい英文】"
)

const (
	japaneseToEnglish = "あなたは日本語から英語への翻訳者です。入力された日本語を自然で正確な英語に翻訳してください。翻訳結果のみを返してください。"
	englishToJapanese = "あなたは英語から日本語への翻訳者です。入力された英語を自然で正確な日本語に翻訳してください。翻訳結果のみを返してください。"
)

// Translation returns the translator prompt for dir.
func Translation(dir script.Direction) string {
	if dir == script.JapaneseToEnglish {
		return japaneseToEnglish
	}
	return englishToJapanese
}

// GrammarCheck returns the grammar checker prompt. The reply is requested in
// four sections, each header on its own line followed by its content.
func GrammarCheck() string {
	return `あなたは英語の文法チェッカーです。入力された英語文を分析し、以下の形式で回答してください：

` + HeaderResult + `
✅ 文法的に正しい場合: 「正しい英語です」
❌ 誤りがある場合: 誤りの内容を指摘

` + HeaderSuggestion + `
修正版の文章（誤りがある場合のみ）

` + HeaderExplanation + `
誤りの理由や改善点の説明

` + HeaderCorrect + `
最終的に正しい英文（修正がある場合は修正版、正しい場合は元の文章）

簡潔で分かりやすく回答してください。`
}
