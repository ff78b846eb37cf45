package money_test

import (
	"errors"
	"testing"

	"github.com/omoto202/MyCoin/foundation/ledger/money"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_ParseFormat(t *testing.T) {
	type table struct {
		name  string
		input string
		text  string
		fails bool
	}

	tt := []table{
		{name: "whole", input: "10", text: "10.00000000"},
		{name: "fraction", input: "5.5", text: "5.50000000"},
		{name: "full precision", input: "0.00000001", text: "0.00000001"},
		{name: "canonical", input: "5.00000000", text: "5.00000000"},
		{name: "zero", input: "0", text: "0.00000000"},
		{name: "negative", input: "-1", fails: true},
		{name: "too precise", input: "1.000000001", fails: true},
		{name: "empty", input: "", fails: true},
		{name: "not a number", input: "ten", fails: true},
		{name: "bare dot", input: ".5", fails: true},
		{name: "signed fraction", input: "5.-1", fails: true},
	}

	t.Log("Given the need to parse and format amounts.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling the value %q.", testID, tst.input)
			{
				f := func(t *testing.T) {
					amt, err := money.Parse(tst.input)

					if tst.fails {
						if !errors.Is(err, money.ErrInvalidAmount) {
							t.Fatalf("\t%s\tTest %d:\tShould reject the value with ErrInvalidAmount: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould reject the value with ErrInvalidAmount.", success, testID)
						return
					}

					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to parse the value: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to parse the value.", success, testID)

					if got := amt.String(); got != tst.text {
						t.Fatalf("\t%s\tTest %d:\tShould format with 8 decimals, got %q, exp %q.", failed, testID, got, tst.text)
					}
					t.Logf("\t%s\tTest %d:\tShould format with 8 decimals.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_JSON(t *testing.T) {
	t.Log("Given the need to round trip amounts through JSON.")
	{
		t.Logf("\tTest 0:\tWhen handling a quoted amount.")
		{
			var amt money.Amount
			if err := amt.UnmarshalJSON([]byte(`"5.00000000"`)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to unmarshal a quoted amount: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to unmarshal a quoted amount.", success)

			data, err := amt.MarshalJSON()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to marshal the amount: %v", failed, err)
			}

			if string(data) != `"5.00000000"` {
				t.Fatalf("\t%s\tTest 0:\tShould marshal to the canonical form, got %s.", failed, data)
			}
			t.Logf("\t%s\tTest 0:\tShould marshal to the canonical form.", success)
		}

		t.Logf("\tTest 1:\tWhen handling a bare number.")
		{
			var amt money.Amount
			if err := amt.UnmarshalJSON([]byte(`5.5`)); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to unmarshal a bare number: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to unmarshal a bare number.", success)

			if amt != money.MustParse("5.5") {
				t.Fatalf("\t%s\tTest 1:\tShould hold the expected value, got %s.", failed, amt)
			}
			t.Logf("\t%s\tTest 1:\tShould hold the expected value.", success)
		}
	}
}
