package types

import (
	"encoding/json"
	"testing"
)

func mustMoney(t *testing.T, s string) Money {
	t.Helper()
	m, err := ParseMoney(s)
	if err != nil {
		t.Fatalf("ParseMoney(%q) returned error: %v", s, err)
	}
	return m
}

func TestParseMoney(t *testing.T) {
	t.Run("valid amounts", func(t *testing.T) {
		for _, s := range []string{"0", "10", "10.50", "50000.00", "-3.25"} {
			if _, err := ParseMoney(s); err != nil {
				t.Errorf("ParseMoney(%q) returned error: %v", s, err)
			}
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		if _, err := ParseMoney("ten dollars"); err == nil {
			t.Error("ParseMoney should reject non-numeric input")
		}
	})
}

func TestMoneyArithmetic(t *testing.T) {
	balance := mustMoney(t, "50000.00")
	amount := mustMoney(t, "10000.00")

	after := balance.Sub(amount)
	if after.String() != "40000.00" {
		t.Errorf("Sub = %s, want 40000.00", after)
	}

	restored := after.Add(amount)
	if !restored.Equal(balance) {
		t.Errorf("Add did not restore balance, got %s", restored)
	}
}

func TestMoneyComparisons(t *testing.T) {
	five := mustMoney(t, "5000")
	ten := mustMoney(t, "10000")

	if !five.LessThan(ten) {
		t.Error("5000 should be less than 10000")
	}
	if ten.LessThan(five) {
		t.Error("10000 should not be less than 5000")
	}
	if !ZeroMoney.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if !mustMoney(t, "-1").IsNegative() {
		t.Error("-1 should report IsNegative")
	}
	if !ten.IsPositive() {
		t.Error("10000 should report IsPositive")
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[string]string{
		"10":       "10.00",
		"10.5":     "10.50",
		"10.505":   "10.51",
		"0":        "0.00",
		"50000.00": "50000.00",
	}

	for in, want := range cases {
		if got := mustMoney(t, in).String(); got != want {
			t.Errorf("ParseMoney(%q).String() = %q, want %q", in, got, want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	t.Run("marshals to two-decimal string", func(t *testing.T) {
		data, err := json.Marshal(mustMoney(t, "10000"))
		if err != nil {
			t.Fatalf("marshal error: %v", err)
		}
		if string(data) != `"10000.00"` {
			t.Errorf("marshal = %s, want \"10000.00\"", data)
		}
	})

	t.Run("round trips", func(t *testing.T) {
		original := mustMoney(t, "123.45")
		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("marshal error: %v", err)
		}

		var decoded Money
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal error: %v", err)
		}
		if !decoded.Equal(original) {
			t.Errorf("round trip changed value: %s != %s", decoded, original)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var m Money
		if err := json.Unmarshal([]byte(`"lots"`), &m); err == nil {
			t.Error("unmarshal should reject non-numeric strings")
		}
	})
}
