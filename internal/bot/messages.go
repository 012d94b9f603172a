package bot

import (
	"fmt"
	"strings"
	"time"
)

// User-facing texts. The group speaks Ukrainian; keep these in sync with the
// pinned rules post.
const (
	startReply = "Привіт! Я бот для модерації чату."

	rulesText = `📜 Правила групи:
1. Поважайте інших учасників
2. Дотримуйтесь тематики групи
3. В темі #resale використовуйте хештеги #продам або #куплю
4. Заборонено спам та рекламу`

	rulesButtonText = "Так, я прочитав(-ла) правила"

	ackReply    = "Дякуємо! Тепер ви можете писати повідомлення."
	ackErrReply = "Виникла помилка. Спробуйте ще раз."

	topicSetReply     = "✅ Бот тепер контролює цю гілку на відповідність правилам."
	topicUseInsideMsg = "Будь ласка, використовуйте цю команду в темі, яку хочете модерувати."
	topicSetErrMsg    = "Виникла помилка при встановленні теми для модерації."

	// fallbackName stands in when a user has no username to mention.
	fallbackName = "користувач"
)

// mention formats a user reference for notifications.
func mention(username string) string {
	if username == "" {
		return fallbackName
	}
	return "@" + username
}

func welcomeText(username string) string {
	name := mention(username)
	if username == "" {
		name = "новий учасник"
	}
	return fmt.Sprintf("👋 Вітаємо, %s! Ознайомтеся з правилами, щоб уникнути непорозумінь. Приємного спілкування!\n\n%s", name, rulesText)
}

func adminOnlyText(username string) string {
	return fmt.Sprintf("❌ %s, ця команда доступна тільки адміністраторам.", mention(username))
}

func missingHashtagText(username string, required []string) string {
	return fmt.Sprintf("%s, ваше повідомлення було видалено, оскільки воно не містить хештегів %s.",
		mention(username), strings.Join(required, " або "))
}

func priceTooLowText(username string, minPrice int) string {
	return fmt.Sprintf("%s, ваше повідомлення було видалено: мінімальна ціна для продажу — %d грн.",
		mention(username), minPrice)
}

func cooldownText(username string, window time.Duration) string {
	return fmt.Sprintf("%s, ви можете надсилати повідомлення у цю гілку лише раз на %d хвилин!",
		mention(username), int(window.Minutes()))
}
