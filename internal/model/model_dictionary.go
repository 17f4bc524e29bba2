package model

import "encoding/json"

// DictionaryItem 字典条目（value 为代码，label 为显示名称）
type DictionaryItem struct {
	Id           int64           `json:"id,omitempty"`
	DictTypeId   int64           `json:"dict_type,omitempty"`
	Value        string          `json:"value"`
	Label        string          `json:"label"`
	Sort         int             `json:"sort,omitempty"`
	ExtraData    json.RawMessage `json:"extra_data,omitempty"`
	TemplateFile string          `json:"template_file,omitempty"`
}

// DictionaryType 字典类型及其条目
type DictionaryType struct {
	Id    int64            `json:"id,omitempty"`
	Code  string           `json:"code"`
	Name  string           `json:"name"`
	Items []DictionaryItem `json:"items"`
}
