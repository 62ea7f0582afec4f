// Package cie11 resuelve códigos CIE-11 a nombres de enfermedad y busca
// códigos a partir de un nombre parcial. La tabla es estática y se recorre
// linealmente; el orden de la tabla define el orden de las sugerencias.
package cie11

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

const (
	// MinLongitudBusqueda es el mínimo de caracteres para buscar por nombre
	MinLongitudBusqueda = 3
	// MaxSugerencias limita las coincidencias devueltas por BuscarCodigosPorNombre
	MaxSugerencias = 8
)

// Enfermedad es una entrada de la tabla CIE-11
type Enfermedad struct {
	Codigo string `yaml:"codigo" json:"codigo"`
	Nombre string `yaml:"nombre" json:"nombre"`
}

// Sugerencia es una coincidencia de búsqueda por nombre
type Sugerencia = Enfermedad

//go:embed cie11.yaml
var tablaEmbebida []byte

// Tabla es una tabla CIE-11 en memoria
type Tabla struct {
	entradas  []entrada
	porCodigo map[string]int
}

type entrada struct {
	Enfermedad
	nombreNormalizado string
}

// Parse construye una tabla a partir de YAML (lista de {codigo, nombre})
func Parse(data []byte) (*Tabla, error) {
	var lista []Enfermedad
	if err := yaml.Unmarshal(data, &lista); err != nil {
		return nil, fmt.Errorf("parse tabla cie11: %w", err)
	}
	return NuevaTabla(lista)
}

// NuevaTabla valida y normaliza una lista de enfermedades
func NuevaTabla(lista []Enfermedad) (*Tabla, error) {
	t := &Tabla{
		entradas:  make([]entrada, 0, len(lista)),
		porCodigo: make(map[string]int, len(lista)),
	}
	for i, e := range lista {
		codigo := NormalizarCodigo(e.Codigo)
		nombre := strings.TrimSpace(e.Nombre)
		if codigo == "" || nombre == "" {
			return nil, fmt.Errorf("entrada %d de la tabla cie11 sin código o nombre", i+1)
		}
		if _, dup := t.porCodigo[codigo]; dup {
			return nil, fmt.Errorf("código cie11 duplicado: %s", codigo)
		}
		t.porCodigo[codigo] = len(t.entradas)
		t.entradas = append(t.entradas, entrada{
			Enfermedad:        Enfermedad{Codigo: codigo, Nombre: nombre},
			nombreNormalizado: normalizarTexto(nombre),
		})
	}
	return t, nil
}

// Cargar lee una tabla desde un archivo YAML
func Cargar(path string) (*Tabla, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer tabla cie11: %w", err)
	}
	return Parse(data)
}

// Len devuelve el número de entradas
func (t *Tabla) Len() int {
	return len(t.entradas)
}

// BuscarEnfermedadPorCodigo devuelve el nombre exacto para un código.
// El código se compara sin espacios y en mayúsculas.
func (t *Tabla) BuscarEnfermedadPorCodigo(codigo string) (string, bool) {
	i, ok := t.porCodigo[NormalizarCodigo(codigo)]
	if !ok {
		return "", false
	}
	return t.entradas[i].Nombre, true
}

// BuscarCodigosPorNombre devuelve hasta MaxSugerencias enfermedades cuyo nombre
// contiene el texto, sin distinguir mayúsculas ni tildes.
func (t *Tabla) BuscarCodigosPorNombre(nombre string) []Sugerencia {
	q := normalizarTexto(nombre)
	if len([]rune(q)) < MinLongitudBusqueda {
		return nil
	}
	var res []Sugerencia
	for _, e := range t.entradas {
		if strings.Contains(e.nombreNormalizado, q) {
			res = append(res, e.Enfermedad)
			if len(res) == MaxSugerencias {
				break
			}
		}
	}
	return res
}

// NormalizarCodigo quita espacios y pasa el código a mayúsculas
func NormalizarCodigo(codigo string) string {
	return strings.ToUpper(strings.TrimSpace(codigo))
}

var quitarTildes = runes.Remove(runes.In(unicode.Mn))

func normalizarTexto(s string) string {
	t := transform.Chain(norm.NFD, quitarTildes, norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

var (
	mu      sync.RWMutex
	defecto *Tabla
)

func init() {
	t, err := Parse(tablaEmbebida)
	if err != nil {
		panic(err)
	}
	defecto = t
}

// Defecto devuelve la tabla activa del proceso
func Defecto() *Tabla {
	mu.RLock()
	defer mu.RUnlock()
	return defecto
}

// Usar reemplaza la tabla activa (por ejemplo con CIE11_FILE)
func Usar(t *Tabla) {
	if t == nil {
		return
	}
	mu.Lock()
	defecto = t
	mu.Unlock()
}

// BuscarEnfermedadPorCodigo busca en la tabla activa
func BuscarEnfermedadPorCodigo(codigo string) (string, bool) {
	return Defecto().BuscarEnfermedadPorCodigo(codigo)
}

// BuscarCodigosPorNombre busca en la tabla activa
func BuscarCodigosPorNombre(nombre string) []Sugerencia {
	return Defecto().BuscarCodigosPorNombre(nombre)
}
