package elasticsearch

// DefaultIndexName is the default Elasticsearch index for catalog documents.
const DefaultIndexName = "catalog_documents"

// buildIndexMapping returns the JSON mapping for the catalog index. The
// assembled documents carry dynamically scoped field names (locale, store,
// catalog, and price list suffixes), so the schema is built almost entirely
// from dynamic templates keyed on the stable name prefixes. The patterns
// must stay in step with the naming rules in the indexing package.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "folding_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase", "asciifolding"]
        }
      }
    }
  },
  "mappings": {
    "dynamic_templates": [
      {
        "prices": {
          "match": "price_*",
          "mapping": { "type": "scaled_float", "scaling_factor": 100 }
        }
      },
      {
        "displayability_flags": {
          "match": "displayable_*",
          "mapping": { "type": "boolean" }
        }
      },
      {
        "category_code_lists": {
          "match": "product_category_*",
          "mapping": { "type": "keyword" }
        }
      },
      {
        "attribute_values": {
          "match": "attr_*",
          "mapping": { "type": "text", "analyzer": "folding_analyzer", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } }
        }
      },
      {
        "sortable_fields": {
          "match": "sort_*",
          "mapping": { "type": "keyword" }
        }
      },
      {
        "localized_names": {
          "match": "display_name_*",
          "mapping": { "type": "text", "analyzer": "folding_analyzer", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } }
        }
      },
      {
        "localized_brands": {
          "match": "brand_name_*",
          "mapping": { "type": "text", "analyzer": "folding_analyzer" }
        }
      },
      {
        "localized_categories": {
          "match": "category_name_*",
          "mapping": { "type": "text", "analyzer": "folding_analyzer" }
        }
      },
      {
        "localized_sku_options": {
          "match": "sku_option_value_*",
          "mapping": { "type": "text", "analyzer": "folding_analyzer" }
        }
      }
    ],
    "properties": {
      "entity_type":           { "type": "keyword" },
      "object_uid":            { "type": "keyword" },
      "product_code":          { "type": "keyword" },
      "sku_code":              { "type": "keyword" },
      "sku_result_uid":        { "type": "keyword" },
      "brand_code":            { "type": "keyword" },
      "catalog_code":          { "type": "keyword" },
      "master_catalog_code":   { "type": "keyword" },
      "category_code":         { "type": "keyword" },
      "parent_category_codes": { "type": "keyword" },
      "display_name":          { "type": "text", "analyzer": "folding_analyzer", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } },
      "brand_name":            { "type": "text", "analyzer": "folding_analyzer" },
      "constituent_count":     { "type": "integer" },
      "start_date":            { "type": "date" },
      "end_date":              { "type": "date" },
      "create_time":           { "type": "date" },
      "status":                { "type": "keyword" },
      "store_code":            { "type": "keyword" },
      "carrier_code":          { "type": "keyword" },
      "promotion_name":        { "type": "text", "analyzer": "folding_analyzer" },
      "user_name":             { "type": "keyword" },
      "email":                 { "type": "keyword" },
      "user_id":               { "type": "keyword" },
      "shared_id":             { "type": "keyword" },
      "first_name":            { "type": "text", "analyzer": "folding_analyzer" },
      "last_name":             { "type": "text", "analyzer": "folding_analyzer" },
      "phone_number":          { "type": "keyword" },
      "zip_postal_code":       { "type": "keyword" },
      "all_catalogs_access":   { "type": "boolean" },
      "all_stores_access":     { "type": "boolean" },
      "preferred_address":     { "type": "text", "analyzer": "folding_analyzer" }
    }
  }
}`
}
