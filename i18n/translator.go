// Package i18n localizes the headline messages of decode failures and
// warnings. The built-in dictionary ships English and Japanese; SetTranslator
// swaps in anything else.
package i18n

// Translator retrieves localized messages for failure/warning codes. data
// provides optional metadata to embed in the message (for example,
// "expected" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			if e := data["expected"]; e != "" {
				return e + " を期待しましたが、次の値が見つかりました:"
			}
			return "型が不正です"
		case "required":
			return "必須プロパティ " + quoted(data["field"]) + " が不足しています"
		case "missing_index":
			return "インデックス " + data["index"] + " が存在しません"
		case "one_of_empty":
			return "選択肢のない oneOf は成功できません"
		case "one_of_failed":
			return "すべての選択肢が失敗しました:"
		case "failure":
			return data["message"]
		case "unused_value":
			return "未使用の値:"
		case "unused_field":
			return "未使用のフィールド値:"
		case "unused_index":
			return "未使用の要素:"
		case "warning":
			return data["message"]
		case "duplicate_key":
			return "キーが重複しています"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if e := data["expected"]; e != "" {
				return "expected " + e + ", found:"
			}
			return "invalid type"
		case "required":
			return "required field " + quoted(data["field"]) + " is missing"
		case "missing_index":
			return "missing index " + data["index"]
		case "one_of_empty":
			return "a oneOf with no alternatives cannot succeed"
		case "one_of_failed":
			return "all alternatives failed:"
		case "failure":
			return data["message"]
		case "unused_value":
			return "unused value:"
		case "unused_field":
			return "unused field value:"
		case "unused_index":
			return "unused element:"
		case "warning":
			return data["message"]
		case "duplicate_key":
			return "duplicate key"
		}
	}
	return code
}

func quoted(s string) string { return "\"" + s + "\"" }

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil argument restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T resolves a message through the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Message(code, data)
}
