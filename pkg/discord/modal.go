package discord

import "github.com/bwmarrin/discordgo"

// TextInputValue returns the value of the modal text input with the given
// custom ID, or "" when the modal has no such input.
func TextInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if input, ok := rc.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
