package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/algrishin88/neurocoffee/pkg/telegram"
	"github.com/algrishin88/neurocoffee/pkg/yandex"
)

// Recipe is a parsed AI-generated drink.
type Recipe struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Price        int64  `json:"price"`
	Size         string `json:"size"`
	FullText     string `json:"fullText"`
}

type RecipeService struct {
	GPT      *yandex.GPTClient
	Telegram *telegram.Client
	Log      *slog.Logger
}

func NewRecipeService(gpt *yandex.GPTClient, tg *telegram.Client, log *slog.Logger) *RecipeService {
	return &RecipeService{GPT: gpt, Telegram: tg, Log: log}
}

type GenerateReq struct {
	Mood        string `json:"mood"`
	Preferences string `json:"preferences"`
	Customer    string `json:"customer"`
}

func (r *GenerateReq) prompt() string {
	parts := make([]string, 0, 2)
	if m := strings.TrimSpace(r.Mood); m != "" {
		parts = append(parts, "Настроение: "+m)
	}
	if p := strings.TrimSpace(r.Preferences); p != "" {
		parts = append(parts, "Пожелания: "+p)
	}
	return strings.Join(parts, ". ")
}

const recipeSystemPrompt = `Ты — бариста-нейросеть в кофейне "НейроКофейня". ` +
	`Придумай уникальный кофейный напиток по пожеланиям гостя. Ответь строго в формате:
Название: <название напитка>
Описание: <одно-два предложения>
Ингредиенты: <через запятую>
Приготовление: <короткая инструкция>
Цена: <число от 80 до 350> руб
Объём: <размер>мл`

// Generate asks YandexGPT for a drink and parses the structured reply. A
// missing or unparseable reply falls back to the house default so ordering
// never blocks on the model; the fallback flag is reported to the client.
func (s *RecipeService) Generate(ctx context.Context, req *GenerateReq) (recipe *Recipe, fallback bool, err error) {
	recipe, fallback = fallbackRecipe(), true
	if s.GPT.Configured() {
		text, err := s.GPT.Complete(ctx, []yandex.Message{
			{Role: "system", Text: recipeSystemPrompt},
			{Role: "user", Text: "Гость: " + req.prompt()},
		}, 500)
		if err != nil {
			s.Log.Warn("recipe generation failed, using fallback", "error", err)
		} else if parsed := parseRecipe(text); parsed != nil {
			recipe, fallback = parsed, false
		} else {
			s.Log.Warn("recipe reply did not parse, using fallback")
		}
	}

	if s.Telegram.Configured() {
		customer := strings.TrimSpace(req.Customer)
		if customer == "" {
			customer = "Гость"
		}
		if err := s.Telegram.NotifyRecipe(ctx, customer,
			recipe.Name, recipe.Description, recipe.Ingredients,
			recipe.Instructions, recipe.Size, recipe.Price); err != nil {
			s.Log.Warn("recipe telegram notify failed", "error", err)
		}
	}
	return recipe, fallback, nil
}

const chatHistoryLimit = 10

type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ChatReq struct {
	Message string        `json:"message" binding:"required"`
	History []ChatMessage `json:"history"`
}

const chatSystemPrompt = `Ты — дружелюбный помощник кофейни "НейроКофейня". ` +
	`Отвечай кратко, по-русски, помогай с выбором напитков и вопросами о заказах.`

// Chat answers a visitor with bounded conversation history. Unconfigured
// model gets a canned reply instead of an error.
func (s *RecipeService) Chat(ctx context.Context, req *ChatReq) (string, error) {
	if !s.GPT.Configured() {
		return "Извините, помощник сейчас недоступен. Напишите нам через форму обратной связи!", nil
	}

	history := req.History
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}
	messages := make([]yandex.Message, 0, len(history)+2)
	messages = append(messages, yandex.Message{Role: "system", Text: chatSystemPrompt})
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" {
			role = "assistant"
		}
		messages = append(messages, yandex.Message{Role: role, Text: m.Text})
	}
	messages = append(messages, yandex.Message{Role: "user", Text: req.Message})

	reply, err := s.GPT.Complete(ctx, messages, 300)
	if err != nil {
		return "", err
	}
	return reply, nil
}

var (
	nameRe         = regexp.MustCompile(`(?i)название:\s*(.+)`)
	descriptionRe  = regexp.MustCompile(`(?i)описание:\s*(.+)`)
	ingredientsRe  = regexp.MustCompile(`(?i)ингредиенты:\s*(.+)`)
	instructionsRe = regexp.MustCompile(`(?i)приготовление:\s*(.+)`)
	priceRe        = regexp.MustCompile(`(?i)цена:\s*(\d+)`)
	sizeRe         = regexp.MustCompile(`(?i)объ[её]м:\s*(\d+\s*мл)`)
)

func parseRecipe(text string) *Recipe {
	name := firstMatch(nameRe, text)
	if name == "" {
		return nil
	}
	r := &Recipe{
		Name:         name,
		Description:  firstMatch(descriptionRe, text),
		Ingredients:  firstMatch(ingredientsRe, text),
		Instructions: firstMatch(instructionsRe, text),
		Price:        neuroPriceDefault,
		Size:         "350мл",
		FullText:     strings.TrimSpace(text),
	}
	if m := firstMatch(priceRe, text); m != "" {
		if p, err := strconv.ParseInt(m, 10, 64); err == nil {
			r.Price = clampNeuroPrice(p)
		}
	}
	if m := firstMatch(sizeRe, text); m != "" {
		r.Size = strings.ReplaceAll(m, " ", "")
	}
	return r
}

func firstMatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func fallbackRecipe() *Recipe {
	r := &Recipe{
		Name:         "Нейро-кофе дня",
		Description:  "Фирменный напиток от нашей нейросети: эспрессо, молоко и щепотка вдохновения.",
		Ingredients:  "эспрессо, молоко, карамельный сироп, корица",
		Instructions: "Сварить эспрессо, добавить вспененное молоко и сироп, посыпать корицей.",
		Price:        neuroPriceDefault,
		Size:         "350мл",
	}
	r.FullText = fmt.Sprintf("Название: %s\nОписание: %s\nИнгредиенты: %s\nПриготовление: %s\nЦена: %d руб\nОбъём: %s",
		r.Name, r.Description, r.Ingredients, r.Instructions, r.Price, r.Size)
	return r
}
