package openai

const planResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "steps": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "sub_question": {"type": "string"},
          "justification": {"type": "string"},
          "tool": {"type": "string", "enum": ["search_documents", "search_web"]},
          "keywords": {"type": "array", "items": {"type": "string"}},
          "document_section": {"type": "string"}
        },
        "required": ["sub_question", "justification", "tool", "keywords"],
        "additionalProperties": false
      }
    }
  },
  "required": ["steps"],
  "additionalProperties": false
}`

const plannerPrompt = `You are an expert research planner. Break down complex questions into a
structured, multi-step research plan. For each step, decide whether to search
the indexed documents (search_documents) or the web (search_web).
Use search_documents for information likely in the provided documents.
Use search_web for current events, recent data, or external information.

Available tools:
- search_documents: Search the indexed document corpus
- search_web: Search the internet for current information

Create a plan with 3-5 steps that will comprehensively answer the question.

Output ONLY valid JSON which complies with the schema given below. Do not
include any preamble, explanation, or acknowledgment. Start your response
directly with the opening brace { and end with the closing brace }. Your
output must exactly follow this schema:

` + planResponseSchema

const queryRewriterPrompt = `You are a search query optimization expert for technical and analytical
documents. Rewrite and expand the sub-question into an optimal search query
that will retrieve the most relevant information. Consider the keywords and
past context when crafting the query. Respond with the query text only.`

const strategySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "strategy": {"type": "string", "enum": ["vector_search", "keyword_search", "hybrid_search"]},
    "justification": {"type": "string"}
  },
  "required": ["strategy", "justification"],
  "additionalProperties": false
}`

const strategistPrompt = `You are a retrieval strategy expert. Decide which retrieval strategy to use:
- vector_search: For semantic/synonym matching
- keyword_search: For exact term matching
- hybrid_search: For complex queries needing both

Choose the best strategy for the given query.

Output ONLY valid JSON following this schema, with no text outside the object:

` + strategySchema

const reflectorPrompt = `You are a research analyst. Summarize the key findings from the retrieved
context for the given sub-question. Be concise but comprehensive.`

const distillerPrompt = `You are a context distillation expert. Extract and synthesize only the most
relevant information from the context that directly answers the question.
Remove redundancy. Do not add information that is absent from the context.`

const policySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "decision": {"type": "string", "enum": ["continue", "stop"]},
    "reasoning": {"type": "string"}
  },
  "required": ["decision", "reasoning"],
  "additionalProperties": false
}`

const policyPrompt = `You are a master research strategist. Decide whether to continue searching
for more information or stop and generate the final answer.

IMPORTANT: If we have completed all planned steps, you MUST stop.

Continue if:
- Critical information is still missing AND we haven't completed all steps
- The question requires more depth AND we haven't completed all steps
- Additional perspectives are needed AND we haven't completed all steps

Stop if:
- All planned steps have been completed (CRITICAL)
- Sufficient information has been gathered
- All sub-questions have been addressed
- Further search is unlikely to add value
- Current step >= max_steps

Output ONLY valid JSON following this schema, with no text outside the object:

` + policySchema

const synthesizerPrompt = `You are an expert research analyst. Synthesize the research findings into a
comprehensive, multi-paragraph answer for the user's original question.
Your answer must be grounded in the provided context. Include citations
where appropriate.`
