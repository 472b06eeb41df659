package core

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// NoMenuItem marks an entry with no food or drink attached.
	NoMenuItem = "-"
	// NoCategory is the category of every income entry.
	NoCategory = "-"
)

var menuItems = []string{
	"Rice Soup with Fish",
	"Khao Soi Chicken",
	"Coffee",
	"Green Tea",
	"Fried Rice with Pork",
	"Papaya Salad (Thai Style)",
	"Water",
}

var menuCalories = map[string]int{
	"Rice Soup with Fish":       325,
	"Khao Soi Chicken":          390,
	"Coffee":                    180,
	"Green Tea":                 150,
	"Fried Rice with Pork":      450,
	"Papaya Salad (Thai Style)": 120,
	"Water":                     0,
}

var expenseCategories = []string{
	"Food and Drinks",
	"Transportation (Fare/Fuel)",
	"Household Items",
	"Clothing/Cosmetics",
	"Medical Expenses",
	"Other Expenses (please specify)",
}

// CalorieFor is best-effort: the sentinel and unknown items count as zero.
func CalorieFor(item string) int {
	return menuCalories[item]
}

// MenuItems returns the selectable menu items in display order, without the sentinel.
func MenuItems() []string {
	return append([]string(nil), menuItems...)
}

func IsMenuItem(item string) bool {
	_, ok := menuCalories[item]
	return ok
}

// ExpenseCategories returns the accepted expense categories in display order.
func ExpenseCategories() []string {
	return append([]string(nil), expenseCategories...)
}

func IsExpenseCategory(c string) bool {
	for _, v := range expenseCategories {
		if v == c {
			return true
		}
	}
	return false
}

var ErrInvalidUser = errors.New("invalid user")

// NormalizeUserID trims s and rejects names that cannot double as a file
// name or sheet title.
func NormalizeUserID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty user name", ErrInvalidUser)
	}
	if len([]rune(s)) > 64 {
		return "", fmt.Errorf("%w: user name too long (max 64 characters)", ErrInvalidUser)
	}
	if s == "." || s == ".." {
		return "", ErrInvalidUser
	}
	for _, r := range s {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|!'[]`, r) {
			return "", fmt.Errorf("%w: user name contains forbidden characters", ErrInvalidUser)
		}
	}
	return s, nil
}
