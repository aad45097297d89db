package billing

import (
	"context"

	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/internal/infrastructure/sefaz"
)

// DocumentBuilder monta o XML (sem assinatura) da NF-e e a chave de acesso.
// A implementação concreta é sefaz.XMLBuilderService.
type DocumentBuilder interface {
	Build(in *sefaz.BuildInput) (*sefaz.BuildResult, error)
}

// DanfeGenerator port de saída para a representação gráfica da NF-e (DANFE).
// A implementação concreta vive em infrastructure/pdf; nos testes injeta-se um mock.
type DanfeGenerator interface {
	GenerateDanfe(ctx context.Context, inv *entity.Invoice, items []*entity.InvoiceItem, emitter *entity.Emitter) ([]byte, error)
}
