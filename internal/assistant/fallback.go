package assistant

import (
    "fmt"
    "strings"
)

const systemPrompt = "You are the dining assistant of the MTP Food restaurant. " +
    "Give short, friendly advice about the menu, prices and table bookings."

var greetingWords = []string{"hello", "hi ", "hey", "good morning", "good evening", "xin chào"}

var priceWords = []string{"price", "cost", "how much", "expensive", "cheap"}

var suggestWords = []string{"suggest", "recommend", "what should", "what's good", "hungry"}

// Fallback is the scripted responder.  It is deterministic: the same message
// and menu always produce the same answer, which keeps the chat endpoint
// usable and testable without any model configured.
func Fallback(message string, foods []FoodSummary) string {
    m := strings.ToLower(strings.TrimSpace(message))

    if containsAny(m, greetingWords) || m == "hi" {
        return "Hello! I can suggest dishes, check prices or help you book a table."
    }

    if containsAny(m, priceWords) {
        if len(foods) == 0 {
            return "I do not have menu prices right now."
        }
        cheapest, priciest := foods[0], foods[0]
        for _, f := range foods[1:] {
            if f.Price < cheapest.Price {
                cheapest = f
            }
            if f.Price > priciest.Price {
                priciest = f
            }
        }
        return fmt.Sprintf("Our most affordable dish is %s (%d), the most premium is %s (%d).",
            cheapest.Name, cheapest.Price, priciest.Name, priciest.Price)
    }

    if containsAny(m, suggestWords) {
        if len(foods) == 0 {
            return "I need a few menu items before I can make a good suggestion."
        }
        n := len(foods)
        if n > 3 {
            n = 3
        }
        var sb strings.Builder
        sb.WriteString("You could try:")
        for _, f := range foods[:n] {
            fmt.Fprintf(&sb, "\n- %s (%d)", f.Name, f.Price)
        }
        return sb.String()
    }

    for _, f := range foods {
        if f.Name != "" && strings.Contains(m, strings.ToLower(f.Name)) {
            return fmt.Sprintf("%s is currently %d.", f.Name, f.Price)
        }
    }

    return "I can help you look up dishes, prices and table bookings. What would you like to know?"
}

func containsAny(s string, words []string) bool {
    for _, w := range words {
        if strings.Contains(s, w) {
            return true
        }
    }
    return false
}
