// Package i18n carrega as mensagens traduzidas (um JSON por idioma) e
// resolve o idioma pedido pelo cliente.
package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// Service gerencia traduções e internacionalização
type Service struct {
	translations    map[string]map[string]string // [idioma][chave]mensagem
	defaultLanguage string

	languages []string // mesma ordem das tags do matcher
	matcher   language.Matcher

	mu        sync.RWMutex
	templates map[string]*template.Template // "idioma\x00chave"
}

// NewService lê os arquivos <idioma>.json de localesDir
func NewService(localesDir, defaultLang string) (*Service, error) {
	return NewServiceFS(os.DirFS(localesDir), ".", defaultLang)
}

// NewEmbeddedService usa as traduções embutidas no binário
func NewEmbeddedService(defaultLang string) (*Service, error) {
	return NewServiceFS(embeddedLocales, "locales", defaultLang)
}

// NewServiceFS carrega os arquivos <idioma>.json de dir dentro de fsys.
// O idioma padrão precisa estar entre eles.
func NewServiceFS(fsys fs.FS, dir, defaultLang string) (*Service, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to find locale files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found in %s", dir)
	}

	s := &Service{
		translations:    make(map[string]map[string]string, len(files)),
		defaultLanguage: defaultLang,
		templates:       make(map[string]*template.Template),
	}

	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
		}

		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
		}
		s.translations[strings.TrimSuffix(path.Base(file), ".json")] = messages
	}

	if _, ok := s.translations[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", defaultLang)
	}

	// O idioma padrão vem primeiro: é o fallback do matcher
	s.languages = append([]string{defaultLang}, without(s.GetSupportedLanguages(), defaultLang)...)
	tags := make([]language.Tag, len(s.languages))
	for i, lang := range s.languages {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid language tag in locale file %s.json: %w", lang, err)
		}
		tags[i] = tag
	}
	s.matcher = language.NewMatcher(tags)

	return s, nil
}

func without(values []string, drop string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}

// T traduz key para lang, caindo para o idioma padrão e depois para a
// própria chave. params[0] preenche os campos do template ({{.Field}}).
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	message, lang := s.lookup(lang, key)
	if message == "" {
		return key
	}
	if len(params) == 0 || !strings.Contains(message, "{{") {
		return message
	}

	tmpl, err := s.template(lang, key, message)
	if err != nil {
		return message
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params[0]); err != nil {
		return message
	}
	return buf.String()
}

// lookup devolve a mensagem e o idioma em que foi encontrada
func (s *Service) lookup(lang, key string) (string, string) {
	if msg, ok := s.translations[lang][key]; ok {
		return msg, lang
	}
	if msg, ok := s.translations[s.defaultLanguage][key]; ok {
		return msg, s.defaultLanguage
	}
	return "", ""
}

func (s *Service) template(lang, key, message string) (*template.Template, error) {
	id := lang + "\x00" + key

	s.mu.RLock()
	tmpl, ok := s.templates[id]
	s.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, err := template.New(key).Parse(message)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.templates[id] = tmpl
	s.mu.Unlock()
	return tmpl, nil
}

// GetDefaultLanguage retorna o idioma padrão configurado
func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages retorna os idiomas carregados em ordem alfabética
func (s *Service) GetSupportedLanguages() []string {
	langs := make([]string, 0, len(s.translations))
	for lang := range s.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Match resolve uma tag ("pt", "es-MX") ou um header Accept-Language
// inteiro para o idioma carregado mais próximo ("pt-BR", "es"). Retorna ""
// quando o valor é inválido ou nenhum idioma carregado serve.
func (s *Service) Match(accept string) string {
	desired, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(desired) == 0 {
		return ""
	}

	_, idx, confidence := s.matcher.Match(desired...)
	if confidence == language.No {
		return ""
	}
	return s.languages[idx]
}

// Missing lista as chaves do idioma padrão que lang não traduz
func (s *Service) Missing(lang string) []string {
	var missing []string
	for key := range s.translations[s.defaultLanguage] {
		if _, ok := s.translations[lang][key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
