package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/usecase"
)

const (
	stickerGreeting = "CAACAgIAAxkBAAEMCf5mM0yOPIO3B7VADqT6-c8Lmhi-oQACH0YAAmAamUnQNXBXD5yG_DQE"
	stickerPurchase = "CAACAgIAAxkBAAEMIzVmR3nXp5DuvWwCgMOPLIIuvmcYcwACjkQAAm44QErJPrDwaCwLDDUE"
)

const (
	textAwardUnavailable = "❌ Награда не найдена или больше недоступна"
	textNotOnShift       = "❌ Награда доступна только в основные рабочие\\доп смены!"
	textRedemptionFailed = "❌ Не удалось оформить награду. Попробуй позже или обратись к МиП"
	textAdminOnly        = "❌ Доступно только администраторам"
	textUnregisteredCB   = "❌ Ты не зарегистрирован в системе"

	textFAQ = `<b>❓️ FAQ</b>

📌<u><b>Ачивки</b></u> - достижения за успехи в работе, за которые начисляются баллы
Бывают <b>автоматические</b> и <b>ручные</b> (начисляются администратором)
Полный список в меню <b>🎯 Достижения</b>

В <b>🏅 Профиле</b> можно посмотреть историю получения ачивок и баллов
У периодических ачивок указывается период начисления, у остальных - конкретный день

📌<u><b>Награда</b></u> - бонус за заработанные баллы
Список в меню <b>❇️ Доступные</b> с описанием и стоимостью
Награды со счетчиком 🧮 можно использовать <u>один раз за смену</u>

После активации награда идет на рассмотрение ответственным
Статус можно узнать в меню <b>✴️ Использованные</b>`

	textAchievements = `<b>🎯 Ачивки</b>

📌<u><b>Ачивки</b></u> - достижения за успехи в работе, за которые начисляются баллы
Бывают <b>автоматические</b> и <b>ручные</b> (начисляются администратором)`

	textAwards = `<b>👏 Награды</b>

📌<u><b>Награды</b></u> - это бонус за заработанные баллы

Список доступных наград можно посмотреть по кнопке <b>❇️ Доступные</b>, там указаны их описания и стоимость
Награды со счетчиком 🧮 можно использовать <u>один раз за смену</u>

После активации награда идет на рассмотрение ответственным
Статус можно узнать в меню <b>✴️ Использованные</b>`

	textSearchPrompt = `<b>🔎 Поиск сотрудника</b>

Введи полные или частичные фио специалиста для поиска`

	textInvalidSearch = "Неверный формат ФИО. Введите в формате:\n" +
		"• Имя Фамилия\n" +
		"• Имя Фамилия Отчество\n" +
		"• Имя Фамилия Отчество Дополнение"
)

func textGreeting(user *model.User, role model.Role, overridden bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Привет, <b>%s</b>!\n\nЯ - Ачивер\nПомогу тебе получить награды и бонусы за твои KPI!\n\n", html.EscapeString(user.FullName))
	if overridden {
		fmt.Fprintf(&b, "<b>🎭 Текущая роль:</b> %s\n\n", role.Name())
	}
	b.WriteString("<i>Используй меню, чтобы выбрать действие</i>")
	return b.String()
}

func textAdminGreeting(user *model.User) string {
	return fmt.Sprintf("Привет, <b>%s</b>!\n\n<b>🎭 Твоя роль:</b> %s\n\n<i>Используй меню для управления ботом</i>",
		html.EscapeString(user.FullName), user.Role.Name())
}

func textUnregistered(username string) string {
	greeting := "Привет!"
	if username != "" {
		greeting = fmt.Sprintf("Привет, <b>@%s</b>!", html.EscapeString(username))
	}
	return greeting + `

Не нашел тебя в списке зарегистрированных пользователей

Регистрация происходит через бота Графиков
Если возникли сложности с регистраций обратись к МиП`
}

func textProfile(balance model.Balance) string {
	return fmt.Sprintf(`<b>🏅 Профиль</b>

Текущее кол-во баллов: <b>%d</b>
Уровень: <b>%d</b>

<i>Всего накоплено: <b>%d</b>
Всего потрачено: <b>%d</b></i>`, balance.Current(), balance.Level(), balance.Credits, balance.Debits)
}

func textInsufficient(need, have int64) string {
	return fmt.Sprintf("❌ Недостаточно очков! Нужно: %d, у вас: %d", need, have)
}

func writeAwardLines(b *strings.Builder, n int, award model.Award) {
	fmt.Fprintf(b, "%d. <b>%s</b>\n💵 Стоимость: %d\n📝 Описание: %s\n",
		n, html.EscapeString(award.Name), award.Cost, html.EscapeString(award.Description))
	if award.Count > 0 {
		fmt.Fprintf(b, "🧮 Активаций: %d\n", award.Count)
	}
	b.WriteString("\n")
}

func textAllAwards(page usecase.Page[model.Award]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>🏆 Все возможные награды</b>\n<i>Страница %d из %d</i>\n\n", page.Number, page.Total)
	if page.Empty() {
		b.WriteString("Каталог наград пока пуст.")
		return b.String()
	}
	for i, award := range page.Items {
		writeAwardLines(&b, page.Offset+i+1, award)
	}
	return strings.TrimRight(b.String(), "\n")
}

func textAvailable(balance int64, page usecase.Page[model.Award]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>❇️ Доступные награды</b>\n💰 Ваш баланс: %d очков\n", balance)
	if page.Empty() {
		b.WriteString("\nПока нет доступных наград.")
		return b.String()
	}
	fmt.Fprintf(&b, "<i>Страница %d из %d</i>\n\n", page.Number, page.Total)
	for i, award := range page.Items {
		writeAwardLines(&b, page.Offset+i+1, award)
	}
	return strings.TrimRight(b.String(), "\n")
}

func awardQuote(award model.Award) string {
	return fmt.Sprintf(`<blockquote expandable><b>✨ Стоимость:</b> %d баллов
<b>📝 Описание:</b> %s
<b>🧮 Активаций:</b> %d</blockquote>`, award.Cost, html.EscapeString(award.Description), award.Count)
}

func textPreview(p *usecase.Preview) string {
	return fmt.Sprintf(`<b>👏 Активация награды</b>

Ты выбрал награду <b>%s</b>
Активируем?

%s

<i>После активации у тебя останется <b>%d баллов</b></i>`, html.EscapeString(p.Award.Name), awardQuote(p.Award), p.Remaining)
}

func textCommentPrompt(award *model.Award) string {
	return fmt.Sprintf(`<b>👏 Подтверждение покупки</b>

Готов выдать тебе награду <b>%s</b>
Напиши комментарий к покупке награды и отправь в этот чат

%s`, html.EscapeString(award.Name), awardQuote(*award))
}

func textReceipt(r *usecase.Receipt) string {
	return fmt.Sprintf(`<b>✅️ Награда приобретена</b>

Ты купил награду <b>%s</b>

%s

<b>🗑️ Потрачено:</b> %d баллов
<b>💳 Осталось:</b> %d баллов

<i>Награда находится на рассмотрении
По результату <b>тебе придет уведомление</b></i>`, html.EscapeString(r.Award.Name), awardQuote(r.Award), r.Award.Cost, r.Remaining)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

func textExecuted(page usecase.Page[model.Execute]) string {
	var b strings.Builder
	b.WriteString("<b>✴️ Использованные награды</b>\n")
	if page.Empty() {
		b.WriteString("\nТы еще не использовал награды.")
		return b.String()
	}
	fmt.Fprintf(&b, "<i>Страница %d из %d</i>\n\n", page.Number, page.Total)
	for i, e := range page.Items {
		fmt.Fprintf(&b, "%d. <b>%s</b>\n📅 Дата: %s\n", page.Offset+i+1, html.EscapeString(e.Name), formatDate(e.Date))
		if e.Pending() {
			b.WriteString("🔘 Статус: ⏳ На рассмотрении\n")
		} else {
			fmt.Fprintf(&b, "🔘 Статус: ✅ Активирована %s\n", formatDate(*e.ExecutingDate))
		}
		if e.Comment != "" {
			fmt.Fprintf(&b, "💬 Комментарий: %s\n", html.EscapeString(e.Comment))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func textAccruals(page usecase.Page[model.Accrual]) string {
	var b strings.Builder
	b.WriteString("<b>🔎 Детализация</b>\n")
	if page.Empty() {
		b.WriteString("\nПока нет начисленных ачивок.")
		return b.String()
	}
	fmt.Fprintf(&b, "<i>Страница %d из %d</i>\n\n", page.Number, page.Total)
	for i, a := range page.Items {
		when := a.Period
		if when == "" {
			when = a.Date
		}
		fmt.Fprintf(&b, "%d. <b>%s</b>\n✨ Баллы: %d\n📅 %s\n\n", page.Offset+i+1, html.EscapeString(a.Name), a.Points, html.EscapeString(when))
	}
	return strings.TrimRight(b.String(), "\n")
}

func textSearchResult(result usecase.SearchResult) string {
	if result.Kind == usecase.ExactPhrase {
		return fmt.Sprintf("Пользователь найден: %s", html.EscapeString(result.Users[0].FullName))
	}

	switch len(result.Users) {
	case 0:
		if result.Kind.FullName() {
			return "Пользователь не найден"
		}
		return "Пользователи не найдены. Попробуйте ввести полное ФИО"
	case 1:
		if result.Kind.FullName() {
			return fmt.Sprintf("<b>🔎 Поиск сотрудника</b>\n\nНайден пользователь: %s", html.EscapeString(result.Users[0].FullName))
		}
		return fmt.Sprintf("Найден пользователь: %s", html.EscapeString(result.Users[0].FullName))
	}

	var b strings.Builder
	if result.Kind.FullName() {
		b.WriteString("Найдено несколько пользователей:\n")
	} else {
		b.WriteString("Найдено несколько пользователей. Уточните запрос:\n")
	}
	for i, u := range result.Users {
		fmt.Fprintf(&b, "%d. %s\n", i+1, html.EscapeString(u.FullName))
	}
	return strings.TrimRight(b.String(), "\n")
}
