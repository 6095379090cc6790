package billing

import (
	"fmt"
	"strings"

	"github.com/jhoicas/factura-express/internal/domain/entity"
)

// Identificadores de campo que viajan entre backend y formulario. Coinciden
// con los nombres de los inputs para que el front pueda marcar el campo
// exacto que falta.
const (
	FieldInvoiceID      = "invoiceId"
	FieldInvoiceDate    = "invoiceDate"
	FieldCompanyName    = "companyName"
	FieldCompanyAddress = "companyAddress"
	FieldClientName     = "clientName"
	FieldClientAddress  = "clientAddress"
	FieldPaymentMethods = "paymentMethods"
	FieldPaymentTerms   = "paymentTerms"
)

// MissingFields devuelve los identificadores de los campos obligatorios
// vacíos en el borrador, en orden determinista: primero los escalares,
// después las descripciones de ítems en orden de aparición
// ("item_<índice>_description"). Slice vacío = borrador válido para envío.
//
// Durante la edición los campos pueden estar vacíos sin problema; esta regla
// solo se aplica al momento del envío.
func MissingFields(d entity.InvoiceDraft) []string {
	missing := make([]string, 0)

	required := []struct {
		id    string
		value string
	}{
		{FieldInvoiceID, d.InvoiceID},
		{FieldInvoiceDate, d.InvoiceDate},
		{FieldCompanyName, d.CompanyName},
		{FieldCompanyAddress, d.CompanyAddress},
		{FieldClientName, d.ClientName},
		{FieldClientAddress, d.ClientAddress},
		{FieldPaymentMethods, d.PaymentMethods},
		{FieldPaymentTerms, d.PaymentTerms},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.id)
		}
	}

	for i, item := range d.Items {
		if strings.TrimSpace(item.Description) == "" {
			missing = append(missing, ItemDescriptionField(i))
		}
	}
	return missing
}

// ItemDescriptionField construye el identificador de la descripción del ítem i.
func ItemDescriptionField(index int) string {
	return fmt.Sprintf("item_%d_description", index)
}
