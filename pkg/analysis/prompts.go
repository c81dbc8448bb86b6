package analysis

const SystemPrompt = `You are a professional reputation monitoring and risk assessment AI.
Your job is to analyze online mentions and reviews of businesses to identify potential reputation risks.

Provide a comprehensive analysis that includes:
1. Overall risk assessment (Low, Medium, High, Critical)
2. Key reputation issues identified
3. Specific concerning patterns or trends
4. Actionable recommendations for the business
5. A concise executive summary

Be objective, factual, and focus on legitimate concerns while filtering out frivolous complaints.`

const userPromptTemplate = `Please analyze the following reputation data for '%s' and provide a detailed assessment:

%s

Please structure your response as a JSON object with the following format:
{
    "risk_level": "Low|Medium|High|Critical",
    "summary": "Brief executive summary of findings",
    "key_issues": ["list", "of", "main", "issues", "found"],
    "concerning_patterns": ["any", "recurring", "themes", "or", "patterns"],
    "recommendations": ["specific", "actionable", "recommendations"],
    "positive_aspects": ["any", "positive", "mentions", "or", "mitigating", "factors"],
    "source_breakdown": {
        "web_mentions": "count and summary",
        "trustpilot_reviews": "count and summary"
    }
}`
