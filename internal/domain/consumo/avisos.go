package consumo

// MotivoAviso identifica a classe de problema de qualidade de dado encontrado.
type MotivoAviso string

// Motivos de aviso. Nenhum deles aborta a análise: a linha afetada é excluída
// (data ilegível) ou marcada e mantida (demais casos).
const (
	AvisoDataInvalida         MotivoAviso = "DATA_INVALIDA"
	AvisoDirecaoInconsistente MotivoAviso = "DIRECAO_INCONSISTENTE"
	AvisoCompraQtdZero        MotivoAviso = "COMPRA_QTD_ZERO"
	AvisoTipoDesconhecido     MotivoAviso = "TIPO_DESCONHECIDO"
)

// AvisoQualidade aponta a linha de origem (documento + sequência) e o motivo.
type AvisoQualidade struct {
	Motivo    MotivoAviso `json:"motivo"`
	NuNota    int64       `json:"nunota"`
	Sequencia int         `json:"sequencia"`
	Detalhe   string      `json:"detalhe,omitempty"`
}
