package llm

import (
	"fmt"
	"strings"

	"vitalchat/internal/domain/models"
)

// Style instruction tables. User-facing text stays pt-BR like the rest of
// the app. Durable and temporary chats carry slightly different tones.
var chatStyles = map[models.ChatType]string{
	models.ChatTypeGeneral: "Leia as mensagens anteriores e responda ao que o usuário está falando levando em consideração o contexto das mensagens anteriores",
	models.ChatTypeCSV:     "Ajude o usuário a entender e interpretar os dados enviados no CSV. Considere os resultados dos outros dados do usuário.",
	models.ChatTypeSleep:   "O usuário pode estar enfrentando alguma dificuldade para dormir. Considere perguntar como tem sido as noites de sono.",
}

var tempChatStyles = map[models.ChatType]string{
	models.ChatTypeGeneral: "Converse livremente com o usuário, de forma amigável.",
	models.ChatTypeCSV:     "Ajude o usuário a entender e interpretar os dados enviados no CSV.",
	models.ChatTypeSleep:   "O usuário pode estar enfrentando alguma dificuldade para dormir.",
}

// defaultStyle is used for any unrecognized chat type.
const defaultStyle = "Seja prestativo e educado."

const noHistoryPlaceholder = "(Sem histórico anterior)"

// StyleInstruction resolves a chat type to its instruction sentence for
// durable chats, with the generic default for unknown tags.
func StyleInstruction(chatType models.ChatType) string {
	if s, ok := chatStyles[chatType]; ok {
		return s
	}
	return defaultStyle
}

// TempStyleInstruction is the session-chat variant of StyleInstruction.
func TempStyleInstruction(chatType models.ChatType) string {
	if s, ok := tempChatStyles[chatType]; ok {
		return s
	}
	return defaultStyle
}

// ComposePrompt builds the single prompt string for one conversation turn.
// history must be chronologically ordered, oldest first. Pure function.
func ComposePrompt(style string, history []models.ChatTurn, message string) string {
	return compose(style, "Histórico recente:", history, message)
}

// ComposeTempPrompt is ComposePrompt with the session-history header.
func ComposeTempPrompt(style string, history []models.ChatTurn, message string) string {
	return compose(style, "Histórico temporário:", history, message)
}

func compose(style, header string, history []models.ChatTurn, message string) string {
	historyText := renderHistory(history)
	if historyText == "" {
		historyText = noHistoryPlaceholder
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n\nUsuário: %q", style, header, historyText, message)
}

// renderHistory renders each turn as a "Usuário:"/"Assistente:" line pair.
func renderHistory(history []models.ChatTurn) string {
	if len(history) == 0 {
		return ""
	}

	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, fmt.Sprintf("Usuário: %s\nAssistente: %s", turn.Message, turn.Response))
	}
	return strings.Join(lines, "\n")
}
