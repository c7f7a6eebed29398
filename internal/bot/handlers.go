package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"fishshop-bot/internal/model"
	"fishshop-bot/internal/telegram"
)

// User-facing texts, carried over from the storefront's launch copy.
const (
	msgGreeting        = "Хочешь рыбы?"
	msgEmailPrompt     = "Введите, пожалуйста ваш email, с вами свяжутся рыбные специалисты"
	msgEmailInvalid    = "Введённый email некорректен. Попробуйте ещё раз"
	msgThanks          = "Спасибо что купили рыбу"
	msgThanksReturning = ". Рады что вам понравилось"
	msgBadSelection    = "Не получилось распознать выбор, попробуйте ещё раз"
	msgSomethingWrong  = "Что-то пошло не так. Попробуйте ещё раз позже"
)

// Button labels.
const (
	labelCart   = "Корзина"
	labelToMenu = "В меню"
	labelPay    = "Оплатить"
	labelBack   = "Назад"
)

// quantityChoices are the kilogram amounts offered on the description card.
var quantityChoices = []int{1, 5, 10}

var validate = validator.New()

// handleStart renders the product menu for any event.
func (e *Engine) handleStart(ctx context.Context, event model.Event) (model.ConversationState, error) {
	if err := e.sendMenu(ctx, event.ChatID); err != nil {
		return "", err
	}
	return model.StateHandleMenu, nil
}

// handleMenu reacts to a menu selection: the cart view, or a product's
// description card.
func (e *Engine) handleMenu(ctx context.Context, event model.Event) (model.ConversationState, error) {
	if event.Kind == model.EventText {
		return e.handleStart(ctx, event)
	}

	if event.Token == model.TokenCart {
		return e.sendCart(ctx, event)
	}
	return e.sendDescription(ctx, event)
}

// handleDescription reacts to the description card's buttons: back to menu,
// cart view, or an add-to-cart quantity choice.
func (e *Engine) handleDescription(ctx context.Context, event model.Event) (model.ConversationState, error) {
	if event.Kind == model.EventText {
		return e.handleStart(ctx, event)
	}

	switch event.Token {
	case model.TokenBackToMenu:
		return e.handleStart(ctx, event)
	case model.TokenCart:
		return e.sendCart(ctx, event)
	}

	productID, qty, err := model.ParseQuantityToken(event.Token)
	if err != nil {
		// Malformed selection is expected control flow: re-prompt, stay.
		if errors.Is(err, model.ErrInvalidInput) {
			if _, sendErr := e.chat.SendMessage(ctx, event.ChatID, msgBadSelection, nil); sendErr != nil {
				return "", sendErr
			}
			return model.StateHandleDescription, nil
		}
		return "", err
	}

	if err := e.shop.AddCartItem(ctx, cartRef(event.ChatID), productID, qty); err != nil {
		return "", err
	}
	return model.StateHandleDescription, nil
}

// handleCart reacts to the cart view's buttons: back to menu, checkout, or a
// line-item removal.
func (e *Engine) handleCart(ctx context.Context, event model.Event) (model.ConversationState, error) {
	if event.Kind == model.EventText {
		return e.handleStart(ctx, event)
	}

	switch event.Token {
	case model.TokenMenu:
		return e.handleStart(ctx, event)
	case model.TokenPayment:
		if _, err := e.chat.SendMessage(ctx, event.ChatID, msgEmailPrompt, nil); err != nil {
			return "", err
		}
		return model.StateWaitingEmail, nil
	}

	if err := e.shop.RemoveCartItem(ctx, cartRef(event.ChatID), event.Token); err != nil {
		return "", err
	}
	return e.sendCart(ctx, event)
}

// handleWaitingEmail validates the typed email and completes checkout. An
// invalid address re-prompts and stays; button presses from stale keyboards
// fail the same syntactic check and re-prompt too.
func (e *Engine) handleWaitingEmail(ctx context.Context, event model.Event) (model.ConversationState, error) {
	email := strings.TrimSpace(event.Input())
	if validate.Var(email, "required,email") != nil {
		if _, err := e.chat.SendMessage(ctx, event.ChatID, msgEmailInvalid, nil); err != nil {
			return "", err
		}
		return model.StateWaitingEmail, nil
	}

	_, created, err := e.shop.GetOrCreateCustomer(ctx, cartRef(event.ChatID), email)
	if err != nil {
		return "", err
	}

	text := msgThanks
	if !created {
		text += msgThanksReturning
	}
	if _, err := e.chat.SendMessage(ctx, event.ChatID, text, nil); err != nil {
		return "", err
	}
	return model.StateStart, nil
}

// sendMenu renders the product list as one button per product plus the cart
// button.
func (e *Engine) sendMenu(ctx context.Context, chatID int64) error {
	products, err := e.shop.GetProducts(ctx)
	if err != nil {
		return err
	}

	menu := make(telegram.Menu, 0, len(products)+1)
	for _, p := range products {
		menu = append(menu, []telegram.Button{{Label: p.Name, Token: p.ID}})
	}
	menu = append(menu, []telegram.Button{{Label: labelCart, Token: model.TokenCart}})

	_, err = e.chat.SendMessage(ctx, chatID, msgGreeting, menu)
	return err
}

// sendDescription renders a product card: photo, caption with name, price and
// description, quantity buttons, back and cart. The superseded menu message
// is deleted after the card goes out.
func (e *Engine) sendDescription(ctx context.Context, event model.Event) (model.ConversationState, error) {
	product, err := e.shop.GetProduct(ctx, event.Token)
	if err != nil {
		return "", err
	}

	quantities := make([]telegram.Button, 0, len(quantityChoices))
	for _, qty := range quantityChoices {
		quantities = append(quantities, telegram.Button{
			Label: fmt.Sprintf("%dкг", qty),
			Token: fmt.Sprintf("%s, %d", product.ID, qty),
		})
	}
	menu := telegram.Menu{
		quantities,
		{{Label: labelBack, Token: model.TokenBackToMenu}},
		{{Label: labelCart, Token: model.TokenCart}},
	}

	caption := fmt.Sprintf("%s\r\n%s per kg \r\n %s",
		product.Name, product.PriceFormatted, product.Description)

	if product.MainImageID == "" {
		if _, err := e.chat.SendMessage(ctx, event.ChatID, caption, menu); err != nil {
			return "", err
		}
	} else {
		photoURL, err := e.shop.GetFileURL(ctx, product.MainImageID)
		if err != nil {
			return "", err
		}
		if _, err := e.chat.SendPhoto(ctx, event.ChatID, photoURL, caption, menu); err != nil {
			return "", err
		}
	}

	if err := e.chat.DeleteMessage(ctx, event.ChatID, event.MessageID); err != nil {
		return "", err
	}
	return model.StateHandleDescription, nil
}

// sendCart renders the cart view: every line item with its prices, the cart
// total, one removal button per item, and the navigation buttons. The message
// the user pressed is deleted after the view goes out.
func (e *Engine) sendCart(ctx context.Context, event model.Event) (model.ConversationState, error) {
	userID := cartRef(event.ChatID)

	items, err := e.shop.GetCartItems(ctx, userID)
	if err != nil {
		return "", err
	}
	summary, err := e.shop.GetCart(ctx, userID)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	menu := make(telegram.Menu, 0, len(items)+2)
	for _, item := range items {
		fmt.Fprintf(&text, "%s\r\n%s\r\n%s per kg\r\n%dkg in cart for%s\r\n\r\n",
			item.Name, item.Description, item.UnitPriceFormatted,
			item.Quantity, item.TotalFormatted)
		menu = append(menu, []telegram.Button{{
			Label: fmt.Sprintf("Удалить %s", item.Name),
			Token: item.ID,
		}})
	}
	fmt.Fprintf(&text, "Total: %s", summary.TotalFormatted)

	menu = append(menu,
		[]telegram.Button{{Label: labelToMenu, Token: model.TokenMenu}},
		[]telegram.Button{{Label: labelPay, Token: model.TokenPayment}})

	if _, err := e.chat.SendMessage(ctx, event.ChatID, text.String(), menu); err != nil {
		return "", err
	}
	if err := e.chat.DeleteMessage(ctx, event.ChatID, event.MessageID); err != nil {
		return "", err
	}
	return model.StateHandleCart, nil
}

// cartRef is the commerce-side identifier for a chat's cart and customer
// records.
func cartRef(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
