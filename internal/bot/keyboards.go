package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
)

// Keyboard is an inline keyboard attached to a reply.
type Keyboard = tgbotapi.InlineKeyboardMarkup

func button(text string, cb Callback) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, cb.Encode())
}

func keyboard(rows ...[]tgbotapi.InlineKeyboardButton) *Keyboard {
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func backHomeRow(back Callback) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		button("↩️ Назад", back),
		button("🏠 Домой", to(ScopeMain, MenuMain)),
	)
}

// pageRow renders the ⬅️ page/total ➡️ row, or nil for a single page.
func pageRow(current, total int, link func(page int) Callback) []tgbotapi.InlineKeyboardButton {
	if total <= 1 {
		return nil
	}
	var row []tgbotapi.InlineKeyboardButton
	if current > 1 {
		row = append(row, button("⬅️", link(current-1)))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", current, total), Noop))
	if current < total {
		row = append(row, button("➡️", link(current+1)))
	}
	return row
}

func paginated(current, total int, link func(page int) Callback, back Callback, head ...[]tgbotapi.InlineKeyboardButton) *Keyboard {
	rows := head
	if row := pageRow(current, total, link); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows, backHomeRow(back))
	return keyboard(rows...)
}

// MainKeyboard is the user menu. A role reset row is added while an override is active.
func MainKeyboard(overridden bool) *Keyboard {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			button("🏅 Профиль", to(ScopeMain, MenuLevel)),
			button("🎯 Достижения", to(ScopeMain, MenuAchievements)),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("👏 Награды", to(ScopeMain, MenuAwards)),
			button("❓️ FAQ", to(ScopeMain, MenuFAQ)),
		),
	}
	if overridden {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("♻️ Сбросить роль", to(ScopeAdmin, MenuReset))))
	}
	return keyboard(rows...)
}

// Preset roles an administrator can browse the bot with.
var rolePresets = []struct {
	menu  string
	label string
	role  model.Role
}{
	{"mip", "МИП", model.RoleMonitoring},
	{"gok", "ГОК", model.RoleQuality},
	{"duty", "Дежурный", model.RoleDuty},
	{"spec", "Специалист", model.RoleSpecialist},
}

func presetRole(menu string) (model.Role, bool) {
	for _, p := range rolePresets {
		if p.menu == menu {
			return p.role, true
		}
	}
	return model.RoleUnauthorized, false
}

// AdminKeyboard offers the staff search and the role switch.
func AdminKeyboard() *Keyboard {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(button("🔎 Поиск сотрудника", to(ScopeAdmin, MenuSearch))),
	}
	var row []tgbotapi.InlineKeyboardButton
	for _, p := range rolePresets {
		row = append(row, button(p.label, to(ScopeRole, p.menu)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	return keyboard(rows...)
}

// BackKeyboard returns to the main menu.
func BackKeyboard() *Keyboard {
	return keyboard(tgbotapi.NewInlineKeyboardRow(button("↩️ Назад", to(ScopeMain, MenuMain))))
}

func AchievementsKeyboard() *Keyboard {
	return keyboard(
		tgbotapi.NewInlineKeyboardRow(button("🔎 Детализация", to(ScopeAch, MenuDetails))),
		tgbotapi.NewInlineKeyboardRow(button("↩️ Назад", to(ScopeMain, MenuMain))),
	)
}

// AccrualsKeyboard pages through the accrual history.
func AccrualsKeyboard(current, total int) *Keyboard {
	link := func(page int) Callback { return Callback{Scope: ScopeAch, Menu: MenuDetails, Page: page} }
	return paginated(current, total, link, to(ScopeMain, MenuAchievements))
}

func AwardsKeyboard() *Keyboard {
	return keyboard(
		tgbotapi.NewInlineKeyboardRow(
			button("❇️ Доступные", to(ScopeAwards, MenuAvailable)),
			button("✴️ Использованные", to(ScopeAwards, MenuExecuted)),
		),
		tgbotapi.NewInlineKeyboardRow(button("🏆 Все возможные", to(ScopeAwards, MenuAll))),
		tgbotapi.NewInlineKeyboardRow(button("↩️ Назад", to(ScopeMain, MenuMain))),
	)
}

// AwardsListKeyboard pages through a read-only award list of the awards menu.
func AwardsListKeyboard(menu string, current, total int) *Keyboard {
	link := func(page int) Callback { return Callback{Scope: ScopeAwards, Menu: menu, Page: page} }
	return paginated(current, total, link, to(ScopeMain, MenuAwards))
}

// AvailableKeyboard shows one select button per award, two per row, above the pager.
func AvailableKeyboard(awards []model.Award, current, total int) *Keyboard {
	var grid [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(awards); i += 2 {
		var row []tgbotapi.InlineKeyboardButton
		for _, a := range awards[i:min(i+2, len(awards))] {
			row = append(row, button("🎁 "+a.Name, Callback{Scope: ScopeSelect, Page: 1, Award: a.ID}))
		}
		grid = append(grid, row)
	}
	link := func(page int) Callback { return Callback{Scope: ScopeAvail, Menu: MenuPage, Page: page} }
	return paginated(current, total, link, to(ScopeMain, MenuAwards), grid...)
}

// ConfirmKeyboard asks to activate awardID.
func ConfirmKeyboard(awardID int64) *Keyboard {
	return keyboard(
		tgbotapi.NewInlineKeyboardRow(button("✨ Активировать", Callback{Scope: ScopeAwards, Menu: MenuConfirm, Page: 1, Award: awardID})),
		backHomeRow(to(ScopeAwards, MenuAvailable)),
	)
}

// AwardsBackKeyboard leaves the comment prompt.
func AwardsBackKeyboard() *Keyboard {
	return keyboard(backHomeRow(to(ScopeMain, MenuAwards)))
}
