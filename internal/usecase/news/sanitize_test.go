package news

import "testing"

func TestCleanEmpty(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Fatalf("ожидали пустую строку, получили %q", got)
	}
}

func TestCleanStripsAnnotationsAndTokens(t *testing.T) {
	got := Clean("Hello [tag] @user #topic!!")
	if got != "Hello !!" {
		t.Fatalf("ожидали %q, получили %q", "Hello !!", got)
	}
}

func TestCleanCases(t *testing.T) {
	cases := map[string]string{
		"Привет 🔥 мир":                    "Привет мир",
		"Скидка (только сегодня) на _всё_ 50%": "Скидка на 50",
		"Текст, с пунктуацией: да!":        "Текст, с пунктуацией: да!",
		"@mention в начале":                "в начале",
		"#хештег и #ещё_один":              "и",
		"слипнется[вставка]слово":          "слипнется слово",
		"незакрытая [скобка":               "незакрытая скобка",
		"   \t\n  ":                        "",
	}
	for input, expected := range cases {
		if got := Clean(input); got != expected {
			t.Fatalf("Clean(%q): ожидали %q, получили %q", input, expected, got)
		}
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello [tag] @user #topic!!",
		"Привет 🔥 мир",
		"Скидка (только сегодня) на _всё_ 50%",
		"обычный текст без мусора",
		"незакрытая [скобка и (ремарка",
	}
	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Fatalf("Clean не идемпотентен для %q: %q != %q", input, once, twice)
		}
	}
}
